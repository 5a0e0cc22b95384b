// Package paging implementa el sobre de paginación por página que consume el
// panel administrativo: {results, count, next, previous}, con next/previous
// como URLs relativas o null.
package paging

import (
	"net/url"
	"strconv"
)

const (
	// DefaultPageSize tamaño de página cuando el cliente no lo indica.
	DefaultPageSize = 20
	// MaxPageSize tope de tamaño de página.
	MaxPageSize = 100
)

// Page parámetros de paginación ya saneados (página base 1).
type Page struct {
	Number int
	Size   int
}

// FromQuery sanea page/page_size: página mínima 1, tamaño en [1, MaxPageSize].
func FromQuery(page, size int) Page {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: page, Size: size}
}

// LimitOffset devuelve los parámetros SQL equivalentes.
func (p Page) LimitOffset() (limit, offset int) {
	return p.Size, (p.Number - 1) * p.Size
}

// Envelope respuesta de listado paginado.
type Envelope struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// NewEnvelope arma el sobre calculando next/previous a partir de la ruta
// solicitada (path + query). count es el total de registros sin paginar.
func NewEnvelope(requestURI string, p Page, count int, results interface{}) Envelope {
	return Envelope{
		Count:    count,
		Next:     pageLink(requestURI, p, count, +1),
		Previous: pageLink(requestURI, p, count, -1),
		Results:  results,
	}
}

// pageLink devuelve la URL de la página adyacente o nil si no existe.
func pageLink(requestURI string, p Page, count, delta int) *string {
	target := p.Number + delta
	if target < 1 {
		return nil
	}
	lastPage := (count + p.Size - 1) / p.Size
	if lastPage < 1 {
		lastPage = 1
	}
	if target > lastPage {
		return nil
	}
	u, err := url.Parse(requestURI)
	if err != nil {
		return nil
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(target))
	q.Set("page_size", strconv.Itoa(p.Size))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
