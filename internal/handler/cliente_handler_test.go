package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClienteEndpointsCRUD(t *testing.T) {
	env := newTestEnv(t)
	plano := env.seedPlano(t, "Básico", 2, 29.90)

	rec := env.request(t, http.MethodPost, "/clientes",
		fmt.Sprintf(`{"nome": "João da Silva", "email": "joao@supply.com", "plano": %d}`, plano.ID))
	require.Equal(t, http.StatusCreated, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "João da Silva", data["nome"])
	id := fmt.Sprintf("%.0f", data["id"].(float64))

	// Same email again is rejected.
	rec = env.request(t, http.MethodPost, "/clientes",
		`{"nome": "Outro João", "email": "joao@supply.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email já cadastrado", decodeBody(t, rec)["error"])

	rec = env.request(t, http.MethodGet, "/clientes/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "joao@supply.com", data["email"])

	rec = env.request(t, http.MethodPut, "/clientes/"+id, `{"telefone": "11 99999-0000"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "11 99999-0000", data["telefone"])

	rec = env.request(t, http.MethodDelete, "/clientes/"+id, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.request(t, http.MethodGet, "/clientes/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClienteEndpointMudancaDePlano(t *testing.T) {
	env := newTestEnv(t)

	basico := env.seedPlano(t, "Básico", 1, 29.90)
	pro := env.seedPlano(t, "Pro", 10, 99.90)
	cliente := env.seedCliente(t, "Rede Mar", "mar@supply.com", pro.ID)
	clienteID := fmt.Sprint(cliente.ID)

	// Two lojas under the Pro plan.
	for _, nome := range []string{"Mar Norte", "Mar Sul"} {
		rec := env.request(t, http.MethodPost, "/lojas",
			fmt.Sprintf(`{"nome": %q, "cliente": %d}`, nome, cliente.ID))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	// Downgrading below the current count is refused with the cap spelled out.
	rec := env.request(t, http.MethodPut, "/clientes/"+clienteID,
		fmt.Sprintf(`{"plano": %d}`, basico.ID))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	msg, _ := decodeBody(t, rec)["error"].(string)
	assert.Contains(t, msg, "Básico")
	assert.Contains(t, msg, "1 loja(s)")
	assert.Contains(t, msg, "2 loja(s)")

	// An unknown target plan falls back to the default cap of 1, which two
	// lojas already exceed.
	rec = env.request(t, http.MethodPut, "/clientes/"+clienteID, `{"plano": 424242}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	msg, _ = decodeBody(t, rec)["error"].(string)
	assert.Contains(t, msg, "desconhecido")
}

func TestClientePlanoEndpoints(t *testing.T) {
	env := newTestEnv(t)

	env.seedPlano(t, "Premium", -1, 199.90)
	basico := env.seedPlano(t, "Básico", 3, 29.90)

	rec := env.request(t, http.MethodGet, fmt.Sprintf("/clientes/plano/%d", basico.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "Básico", data["nome"])
	assert.Equal(t, float64(3), data["limite_lojas"])
	assert.Equal(t, "Máximo de 3 loja(s)", data["descricao"])

	rec = env.request(t, http.MethodGet, "/clientes/plano/424242", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Plano não encontrado", decodeBody(t, rec)["error"])

	// Listing comes back cheapest first.
	rec = env.request(t, http.MethodGet, "/clientes/planos-disponiveis", "")
	require.Equal(t, http.StatusOK, rec.Code)
	planos := decodeBody(t, rec)["data"].([]interface{})
	require.Len(t, planos, 2)
	assert.Equal(t, "Básico", planos[0].(map[string]interface{})["nome"])
	assert.Equal(t, "Premium", planos[1].(map[string]interface{})["nome"])
}
