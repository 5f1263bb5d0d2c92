package http_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Agenda-api/internal/application/dto"
	"github.com/jhoicas/Agenda-api/pkg/modules"
)

func overridesPath(companyID string) string {
	return "/api/admin/companies/" + companyID + "/overrides"
}

func TestOverrides_SetChangesPermissions(t *testing.T) {
	env := newTestEnv(t)
	env.store.subscribe(testCompanyID, "pro", modules.StatusActive)
	admin := bearer(t, testCompanyID, "admin")

	resp := env.do(t, http.MethodPut, overridesPath(testCompanyID)+"/multi_location", admin,
		`{"is_enabled":true,"reason":"piloto sucursal norte"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.OverrideResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, modules.MultiLocation, out.Module)
	assert.True(t, out.IsEnabled)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, []string{testCompanyID}, env.notified)

	resp = env.do(t, http.MethodGet, "/api/permissions/"+testCompanyID, admin, "")
	defer resp.Body.Close()
	p := decodePermissions(t, resp)
	assert.True(t, p.Modules[modules.MultiLocation], "el override habilita un módulo que el plan no concede")

	resp = env.do(t, http.MethodGet, overridesPath(testCompanyID), admin, "")
	defer resp.Body.Close()
	var list dto.OverrideListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list.Items, 1)
}

func TestOverrides_SetValidation(t *testing.T) {
	env := newTestEnv(t)
	admin := bearer(t, testCompanyID, "admin")
	past := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)

	cases := []struct {
		name string
		path string
		body string
	}{
		{"sin is_enabled", overridesPath(testCompanyID) + "/analytics", `{"reason":"x"}`},
		{"json inválido", overridesPath(testCompanyID) + "/analytics", `{"is_enabled":`},
		{"módulo desconocido", overridesPath(testCompanyID) + "/teleport", `{"is_enabled":true}`},
		{"empresa no uuid", overridesPath("abc") + "/analytics", `{"is_enabled":true}`},
		{"expira en el pasado", overridesPath(testCompanyID) + "/analytics", `{"is_enabled":true,"expires_at":"` + past + `"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.do(t, http.MethodPut, tc.path, admin, tc.body)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
	assert.Empty(t, env.notified)
}

func TestOverrides_UnknownCompany(t *testing.T) {
	env := newTestEnv(t)
	unknown := "00000000-0000-0000-0000-00000000ffff"

	resp := env.do(t, http.MethodPut, overridesPath(unknown)+"/analytics", bearer(t, testCompanyID, "admin"), `{"is_enabled":false}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOverrides_Clear(t *testing.T) {
	env := newTestEnv(t)
	env.store.subscribe(testCompanyID, "pro", modules.StatusActive)
	admin := bearer(t, testCompanyID, "admin")

	resp := env.do(t, http.MethodPut, overridesPath(testCompanyID)+"/analytics", admin, `{"is_enabled":false}`)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, overridesPath(testCompanyID)+"/analytics", admin, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, overridesPath(testCompanyID)+"/analytics", admin, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/permissions/"+testCompanyID, admin, "")
	defer resp.Body.Close()
	assert.True(t, decodePermissions(t, resp).Modules[modules.Analytics], "sin override vuelve a lo que concede el plan")
	assert.Equal(t, []string{testCompanyID, testCompanyID}, env.notified)
}
