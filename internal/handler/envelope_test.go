package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jaysins/inventory-mgt-backend/internal/apperr"
	"github.com/Jaysins/inventory-mgt-backend/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubWarehouseSvc returns canned responses so the tests can assert on the
// HTTP surface alone.
type stubWarehouseSvc struct {
	warehouse *dto.WarehouseResponse
	err       error
}

func (s *stubWarehouseSvc) Create(context.Context, dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	return s.warehouse, s.err
}

func (s *stubWarehouseSvc) Get(context.Context, uuid.UUID) (*dto.WarehouseResponse, error) {
	return s.warehouse, s.err
}

func (s *stubWarehouseSvc) List(context.Context, bool) ([]dto.WarehouseResponse, error) {
	return []dto.WarehouseResponse{*s.warehouse}, s.err
}

func (s *stubWarehouseSvc) Update(context.Context, uuid.UUID, dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	return s.warehouse, s.err
}

func (s *stubWarehouseSvc) Deactivate(context.Context, uuid.UUID) error { return s.err }
func (s *stubWarehouseSvc) Reactivate(context.Context, uuid.UUID) error { return s.err }

func (s *stubWarehouseSvc) CheckCapacity(context.Context, uuid.UUID) (*dto.CapacityResponse, error) {
	return nil, s.err
}

func newWarehouseRouter(svc *stubWarehouseSvc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewWarehousesHandler(svc)
	r := gin.New()
	r.GET("/v1/warehouses/:id", h.Get)
	r.DELETE("/v1/warehouses/:id", h.Deactivate)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req, err := http.NewRequest(method, path, nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSuccessResponsesUseEnvelope(t *testing.T) {
	svc := &stubWarehouseSvc{warehouse: &dto.WarehouseResponse{
		ID: uuid.NewString(), Name: "Main", Location: "North",
		Capacity: 100, IsActive: true,
	}}
	r := newWarehouseRouter(svc)

	w, body := doRequest(t, r, http.MethodGet, "/v1/warehouses/"+svc.warehouse.ID)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["message"])

	data, isMap := body["data"].(map[string]interface{})
	require.True(t, isMap)
	assert.Equal(t, "Main", data["name"])
}

func TestNoDataSuccessStillEnveloped(t *testing.T) {
	svc := &stubWarehouseSvc{warehouse: &dto.WarehouseResponse{ID: uuid.NewString()}}
	r := newWarehouseRouter(svc)

	w, body := doRequest(t, r, http.MethodDelete, "/v1/warehouses/"+svc.warehouse.ID)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["message"])
	// Data is omitted for pure acknowledgements.
	_, hasData := body["data"]
	assert.False(t, hasData)
}

func TestErrorResponsesUseEnvelope(t *testing.T) {
	svc := &stubWarehouseSvc{err: apperr.New(apperr.KindNotFound, "warehouse not found")}
	r := newWarehouseRouter(svc)

	w, body := doRequest(t, r, http.MethodGet, "/v1/warehouses/"+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "warehouse not found", body["message"])
}
