package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/dailishaw/dailishaw-api/internal/application/analytics"
	"github.com/dailishaw/dailishaw-api/internal/application/auth"
	"github.com/dailishaw/dailishaw-api/internal/application/catalog"
	"github.com/dailishaw/dailishaw-api/internal/application/dto"
	"github.com/dailishaw/dailishaw-api/internal/application/export"
	"github.com/dailishaw/dailishaw-api/internal/application/usecase"
	apphttp "github.com/dailishaw/dailishaw-api/internal/interfaces/http"
	"github.com/dailishaw/dailishaw-api/internal/testutil/memstore"
)

type apiFixture struct {
	app      *fiber.App
	profiles *usecase.ProfileUseCase
	adminID  string
	raviID   string
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	s := memstore.New()
	objects := memstore.NewObjects()
	log := zerolog.Nop()

	cache := auth.NewSessionCache(time.Minute)
	guard := auth.NewSessionGuard(s.Profiles(), cache)
	reorderer := catalog.NewReorderer(memstore.NewOrderingTx(s), log)
	doctorUC := usecase.NewDoctorUseCase(s.Doctors())
	profileUC := usecase.NewProfileUseCase(s.Profiles(), guard)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       auth.NewAuthUseCase(s.Profiles(), guard, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		Sessions:     guard,
		ProfileUC:    profileUC,
		CategoryUC:   catalog.NewCategoryUseCase(s.Categories(), s.Images(), objects, reorderer, log),
		ProductUC:    catalog.NewProductUseCase(s.Products(), s.Categories(), s.Images(), objects, reorderer, log),
		ImageUC:      catalog.NewImageUseCase(s.Images(), s.Products(), objects, 0, log),
		DoctorUC:     doctorUC,
		ExpenseUC:    usecase.NewExpenseUseCase(s.Expenses()),
		InputUC:      usecase.NewInputUseCase(s.Inputs(), doctorUC, s.Products()),
		InvestmentUC: usecase.NewInvestmentUseCase(s.Investments(), doctorUC),
		DashboardUC:  appanalytics.NewDashboardUseCase(s.Profiles(), s.Categories(), s.Products(), s.Expenses(), s.Investments()),
		Export:       export.NewService(s.Profiles(), s.Doctors(), s.Products(), s.Expenses(), s.Inputs(), s.Investments(), nil, log),
		JWTSecret:    testJWTSecret,
		ServiceName:  "dailishaw-test",
		Log:          log,
	})

	f := &apiFixture{app: app, profiles: profileUC}
	f.adminID = f.createProfile(t, "admin@dailishaw.in", "Asha Admin", "admin")
	f.raviID = f.createProfile(t, "ravi@dailishaw.in", "Ravi Kumar", "user")
	return f
}

func (f *apiFixture) createProfile(t *testing.T, email, name, role string) string {
	t.Helper()
	out, err := f.profiles.Create(context.Background(), dto.CreateProfileRequest{
		Email: email, Password: "secreto", FullName: name, Role: role,
	})
	require.NoError(t, err)
	return out.ID
}

func (f *apiFixture) login(t *testing.T, email string) string {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "secreto"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	return out.Token
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var e dto.ErrorResponse
	decode(t, resp, &e)
	return e.Code
}

func TestAPI_Health(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_LoginCredencialesInvalidas(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ravi@dailishaw.in", Password: "otra"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))
}

func TestAPI_MeDevuelveSesion(t *testing.T) {
	f := newAPI(t)
	tok := f.login(t, "ravi@dailishaw.in")

	resp := f.do(t, http.MethodGet, "/api/auth/me", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.SessionResponse
	decode(t, resp, &out)
	assert.Equal(t, f.raviID, out.ID)
	assert.Equal(t, "user", out.Role)
}

func TestAPI_UserNoAccedeConsolaAdmin(t *testing.T) {
	f := newAPI(t)
	tok := f.login(t, "ravi@dailishaw.in")

	resp := f.do(t, http.MethodGet, "/api/admin/users", tok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_DesactivarCortaLaSesionAbierta(t *testing.T) {
	f := newAPI(t)
	adminTok := f.login(t, "admin@dailishaw.in")
	raviTok := f.login(t, "ravi@dailishaw.in")

	resp := f.do(t, http.MethodGet, "/api/user/expenses", raviTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodPut, "/api/admin/users/"+f.raviID+"/active", adminTok, dto.SetActiveRequest{IsActive: false})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/user/expenses", raviTok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "ACCOUNT_INACTIVE", errorCode(t, resp))
}

func TestAPI_CambioDeRolSeAplicaSinNuevoLogin(t *testing.T) {
	f := newAPI(t)
	adminTok := f.login(t, "admin@dailishaw.in")
	raviTok := f.login(t, "ravi@dailishaw.in")

	role := "admin"
	resp := f.do(t, http.MethodPut, "/api/admin/users/"+f.raviID, adminTok, dto.UpdateProfileRequest{Role: &role})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/admin/users", raviTok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_DeleteUser(t *testing.T) {
	f := newAPI(t)
	adminTok := f.login(t, "admin@dailishaw.in")
	raviTok := f.login(t, "ravi@dailishaw.in")

	resp := f.do(t, http.MethodPost, "/api/delete-user", raviTok, dto.DeleteUserRequest{UserID: f.adminID})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "solo admin")

	resp = f.do(t, http.MethodPost, "/api/delete-user", adminTok, dto.DeleteUserRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/delete-user", adminTok, dto.DeleteUserRequest{UserID: f.adminID})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "un admin no se borra a sí mismo")

	resp = f.do(t, http.MethodPost, "/api/delete-user", adminTok, dto.DeleteUserRequest{UserID: f.raviID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ok dto.SuccessResponse
	decode(t, resp, &ok)
	assert.True(t, ok.Success)

	resp = f.do(t, http.MethodGet, "/api/auth/me", raviTok, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "el token del usuario borrado deja de valer")

	resp = f.do(t, http.MethodPost, "/api/delete-user", adminTok, dto.DeleteUserRequest{UserID: f.raviID})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_MoverCategorias(t *testing.T) {
	f := newAPI(t)
	tok := f.login(t, "admin@dailishaw.in")

	var ids []string
	for _, name := range []string{"Antibiotics", "Analgesics", "Vitamins"} {
		resp := f.do(t, http.MethodPost, "/api/admin/categories", tok, dto.CategoryRequest{Name: name})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var c dto.CategoryResponse
		decode(t, resp, &c)
		ids = append(ids, c.ID)
		time.Sleep(2 * time.Millisecond)
	}

	resp := f.do(t, http.MethodPost, "/api/admin/categories/"+ids[2]+"/move", tok, dto.MoveRequest{Direction: "up"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var moved dto.SuccessResponse
	decode(t, resp, &moved)
	assert.True(t, moved.Success)

	resp = f.do(t, http.MethodGet, "/api/admin/categories", tok, nil)
	var list dto.ListResponse[dto.CategoryResponse]
	decode(t, resp, &list)
	require.Len(t, list.Items, 3)
	assert.Equal(t, []string{ids[0], ids[2], ids[1]},
		[]string{list.Items[0].ID, list.Items[1].ID, list.Items[2].ID})

	resp = f.do(t, http.MethodPost, "/api/admin/categories/"+ids[0]+"/move", tok, dto.MoveRequest{Direction: "up"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &moved)
	assert.False(t, moved.Success, "el primero no sube")

	resp = f.do(t, http.MethodPost, "/api/admin/categories/"+ids[0]+"/move", tok, dto.MoveRequest{Direction: "left"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_DIRECTION", errorCode(t, resp))

	resp = f.do(t, http.MethodPost, "/api/admin/categories/no-existe/move", tok, dto.MoveRequest{Direction: "down"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_IDsMalFormados(t *testing.T) {
	f := newAPI(t)
	adminTok := f.login(t, "admin@dailishaw.in")
	raviTok := f.login(t, "ravi@dailishaw.in")

	resp := f.do(t, http.MethodPost, "/api/admin/categories/abc/move", adminTok, dto.MoveRequest{Direction: "up"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))

	resp = f.do(t, http.MethodDelete, "/api/admin/users/abc", adminTok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/delete-user", adminTok, dto.DeleteUserRequest{UserID: "foo"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "USER_NOT_FOUND", errorCode(t, resp))

	resp = f.do(t, http.MethodGet, "/api/admin/expenses?user_id=foo", adminTok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))

	resp = f.do(t, http.MethodGet, "/api/admin/inputs/export?user_id=foo", adminTok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/admin/doctors?user_id=foo", adminTok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/admin/products?category_id=foo", adminTok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/admin/products", adminTok, dto.CreateProductRequest{CategoryID: "foo", Name: "Vit-C"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/user/inputs", raviTok, map[string]any{
		"date": "2025-01-05", "doctor_id": "foo", "quantity": 2,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestAPI_GastosSoloDelPropioUsuario(t *testing.T) {
	f := newAPI(t)
	f.createProfile(t, "priya@dailishaw.in", "Priya Shah", "user")
	adminTok := f.login(t, "admin@dailishaw.in")
	raviTok := f.login(t, "ravi@dailishaw.in")
	priyaTok := f.login(t, "priya@dailishaw.in")

	resp := f.do(t, http.MethodPost, "/api/user/expenses", raviTok, map[string]any{
		"date": "2025-01-05", "category": "Travel", "amount": "120.50", "description": "Pune",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.ExpenseResponse
	decode(t, resp, &created)

	var list dto.ListResponse[dto.ExpenseResponse]
	resp = f.do(t, http.MethodGet, "/api/user/expenses?user_id="+f.raviID, priyaTok, nil)
	decode(t, resp, &list)
	assert.Empty(t, list.Items, "user_id en la consola de usuario se ignora")

	resp = f.do(t, http.MethodPut, "/api/user/expenses/"+created.ID, priyaTok, map[string]any{
		"date": "2025-01-05", "category": "Food", "amount": "1",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/admin/expenses?user_id="+f.raviID+"&from=2025-01-01&to=2025-01-31", adminTok, nil)
	decode(t, resp, &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "120.5", list.Items[0].Amount.String())

	resp = f.do(t, http.MethodGet, "/api/admin/expenses?from=2025-02-01&to=2025-01-01", adminTok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_ExportCSVDelUsuario(t *testing.T) {
	f := newAPI(t)
	raviTok := f.login(t, "ravi@dailishaw.in")

	resp := f.do(t, http.MethodPost, "/api/user/expenses", raviTok, map[string]any{
		"date": "2025-01-05", "category": "Travel", "amount": 120,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/user/expenses/export", raviTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	disposition := resp.Header.Get("Content-Disposition")
	assert.Contains(t, disposition, "Expenses_Ravi_Kumar_")
	assert.Contains(t, disposition, ".csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Date,User,Category,Amount,Description\n2025-01-05,Ravi Kumar,Travel,120.00,-\n", string(body))
}

func TestAPI_ExportFormatoDesconocido(t *testing.T) {
	f := newAPI(t)
	tok := f.login(t, "admin@dailishaw.in")

	resp := f.do(t, http.MethodGet, "/api/admin/inputs/export?format=docx", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_VisorDeMediosParaCualquierRol(t *testing.T) {
	f := newAPI(t)
	adminTok := f.login(t, "admin@dailishaw.in")
	raviTok := f.login(t, "ravi@dailishaw.in")

	resp := f.do(t, http.MethodPost, "/api/admin/categories", adminTok, dto.CategoryRequest{Name: "Vitamins"})
	var cat dto.CategoryResponse
	decode(t, resp, &cat)
	resp = f.do(t, http.MethodPost, "/api/admin/products", adminTok, dto.CreateProductRequest{CategoryID: cat.ID, Name: "Vit-C 500"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prod dto.ProductResponse
	decode(t, resp, &prod)

	resp = f.do(t, http.MethodGet, "/api/media/products/"+prod.ID+"/images", raviTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var imgs dto.ListResponse[dto.ProductImageResponse]
	decode(t, resp, &imgs)
	assert.Empty(t, imgs.Items)
	assert.NotNil(t, imgs.Items)
}

func TestAPI_DashboardResumen(t *testing.T) {
	f := newAPI(t)
	tok := f.login(t, "admin@dailishaw.in")

	resp := f.do(t, http.MethodGet, "/api/admin/dashboard/summary", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.DashboardSummaryDTO
	decode(t, resp, &out)
	assert.Equal(t, 2, out.ActiveUsers)
}
