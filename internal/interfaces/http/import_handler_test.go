package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotelbo/cotel-admin-api/internal/application/importer"
	"github.com/cotelbo/cotel-admin-api/internal/domain/entity"
	"github.com/cotelbo/cotel-admin-api/internal/domain/repository"
	apphttp "github.com/cotelbo/cotel-admin-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes del flujo de importación
// ──────────────────────────────────────────────────────────────────────────────

type jobRepoStub struct {
	repository.ImportJobRepository
	jobs map[string]*entity.ImportJob
}

func (f *jobRepoStub) Create(_ context.Context, j *entity.ImportJob) error {
	cp := *j
	f.jobs[j.ID] = &cp
	return nil
}

func (f *jobRepoStub) GetByID(_ context.Context, id string) (*entity.ImportJob, error) {
	return f.jobs[id], nil
}

func (f *jobRepoStub) Update(_ context.Context, j *entity.ImportJob) error {
	cp := *j
	f.jobs[j.ID] = &cp
	return nil
}

type lotRepoStub struct {
	repository.LotRepository
}

func (f *lotRepoStub) GetByID(_ context.Context, id string) (*entity.Lot, error) {
	if id == "lot-1" {
		return &entity.Lot{ID: "lot-1", Active: true}, nil
	}
	return nil, nil
}

type modelRepoStub struct {
	repository.EquipmentModelRepository
}

func (f *modelRepoStub) GetByID(_ context.Context, id string) (*entity.EquipmentModel, error) {
	if id == "model-1" {
		return &entity.EquipmentModel{ID: "model-1", Active: true}, nil
	}
	return nil, nil
}

type equipmentRepoStub struct {
	repository.EquipmentRepository
	batch []*entity.Equipment
}

func (f *equipmentRepoStub) ExistingSerials(_ context.Context, _ []string) (map[string]bool, error) {
	return map[string]bool{}, nil
}

func (f *equipmentRepoStub) CreateBatch(_ context.Context, items []*entity.Equipment) error {
	f.batch = append(f.batch, items...)
	return nil
}

type parserStub struct {
	rows []importer.ParsedRow
}

func (f *parserStub) ParseEquipment(_ io.Reader) ([]importer.ParsedRow, error) {
	return f.rows, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type importApp struct {
	app       *fiber.App
	jobs      *jobRepoStub
	equipment *equipmentRepoStub
}

func buildImportApp(rows []importer.ParsedRow) *importApp {
	jobs := &jobRepoStub{jobs: map[string]*entity.ImportJob{}}
	equipment := &equipmentRepoStub{}
	uc := importer.NewUseCase(
		jobs, &lotRepoStub{}, &modelRepoStub{}, equipment,
		&parserStub{rows: rows}, nil, importer.Limits{},
	)
	h := apphttp.NewImportHandler(uc)

	app := fiber.New()
	app.Post("/importaciones/validar", h.Validate)
	app.Post("/importaciones", h.Commit)
	return &importApp{app: app, jobs: jobs, equipment: equipment}
}

// multipartImport arma el formulario del asistente de importación.
func multipartImport(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("archivo", "equipos.xlsx")
	require.NoError(t, err)
	_, err = fw.Write([]byte("contenido de prueba"))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func baseFields() map[string]string {
	return map[string]string{
		"lote":            "lot-1",
		"modelo":          "model-1",
		"codigo_auxiliar": "1234567",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestImportValidar_OK(t *testing.T) {
	env := buildImportApp([]importer.ParsedRow{{Line: 2, Serial: "SER-001"}})
	body, contentType := multipartImport(t, baseFields())

	req := httptest.NewRequest(http.MethodPost, "/importaciones/validar", body)
	req.Header.Set(fiber.HeaderContentType, contentType)
	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Validated int `json:"validados"`
		Errors    int `json:"errores"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 1, out.Validated)
	assert.Equal(t, 0, out.Errors)
	assert.Empty(t, env.equipment.batch, "la validación no persiste inventario")
}

func TestImportCommit_Persiste(t *testing.T) {
	env := buildImportApp([]importer.ParsedRow{{Line: 2, Serial: "SER-001"}})
	body, contentType := multipartImport(t, baseFields())

	req := httptest.NewRequest(http.MethodPost, "/importaciones", body)
	req.Header.Set(fiber.HeaderContentType, contentType)
	resp, err := env.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Len(t, env.equipment.batch, 1)
}

func TestImportCommit_BanderaDryRun(t *testing.T) {
	env := buildImportApp([]importer.ParsedRow{{Line: 2, Serial: "SER-001"}})
	fields := baseFields()
	fields["dry_run"] = "true"
	body, contentType := multipartImport(t, fields)

	req := httptest.NewRequest(http.MethodPost, "/importaciones", body)
	req.Header.Set(fiber.HeaderContentType, contentType)
	resp, err := env.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode, "dry_run equivale a la validación")
	assert.Empty(t, env.equipment.batch)
}

func TestImportValidar_ArchivoFaltante(t *testing.T) {
	env := buildImportApp(nil)
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("lote", "lot-1"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/importaciones/validar", body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	resp, err := env.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
