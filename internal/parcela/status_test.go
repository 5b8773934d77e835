package parcela

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransicoesPermitidas(t *testing.T) {
	permitidas := []struct {
		de, para Status
	}{
		{StatusPendente, StatusProcessando},
		{StatusPendente, StatusAprovada},
		{StatusPendente, StatusRejeitada},
		{StatusPendente, StatusCancelada},
		{StatusProcessando, StatusAprovada},
		{StatusProcessando, StatusPaga},
		{StatusProcessando, StatusRejeitada},
		{StatusProcessando, StatusCancelada},
		{StatusAprovada, StatusPaga},
		{StatusAprovada, StatusCancelada},
		{StatusRejeitada, StatusPendente},
		{StatusErro, StatusPendente},
	}
	for _, c := range permitidas {
		assert.True(t, c.de.PodeIr(c.para), "%s → %s deveria ser permitida", c.de, c.para)
	}
}

func TestTransicoesProibidas(t *testing.T) {
	todos := []Status{StatusPendente, StatusProcessando, StatusAprovada, StatusPaga, StatusRejeitada, StatusCancelada, StatusErro}

	// terminais não saem por fluxo normal
	for _, destino := range todos {
		assert.False(t, StatusPaga.PodeIr(destino), "paga → %s deveria ser proibida", destino)
		assert.False(t, StatusCancelada.PodeIr(destino), "cancelada → %s deveria ser proibida", destino)
	}

	proibidas := []struct {
		de, para Status
	}{
		{StatusPendente, StatusPaga},
		{StatusAprovada, StatusPendente},
		{StatusAprovada, StatusRejeitada},
		{StatusRejeitada, StatusPaga},
		{StatusRejeitada, StatusAprovada},
		{StatusErro, StatusPaga},
	}
	for _, c := range proibidas {
		assert.False(t, c.de.PodeIr(c.para), "%s → %s deveria ser proibida", c.de, c.para)
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusPaga.Terminal())
	assert.True(t, StatusCancelada.Terminal())
	assert.False(t, StatusPendente.Terminal())
	assert.False(t, Status("inexistente").Terminal())
}

func TestRotuloRelatorio(t *testing.T) {
	casos := map[Status]string{
		StatusPaga:        "PAGO",
		StatusCancelada:   "CANCELADO",
		StatusErro:        "ERRO",
		StatusRejeitada:   "ERRO",
		StatusPendente:    "PENDENTE",
		StatusProcessando: "PENDENTE",
		StatusAprovada:    "PENDENTE",
	}
	for status, rotulo := range casos {
		assert.Equal(t, rotulo, status.RotuloRelatorio())
	}
}

func TestStatusDeRotulo(t *testing.T) {
	casos := []struct {
		rotulo   string
		esperado Status
	}{
		{"PAGO", StatusPaga},
		{"pago", StatusPaga},
		{" Pago ", StatusPaga},
		{"PENDENTE", StatusPendente},
		{"VENCIDA", StatusPendente},
		{"ATIVO", StatusPendente},
		{"CANCELADO", StatusCancelada},
		{"INATIVO", StatusCancelada},
		{"ERRO", StatusErro},
	}
	for _, c := range casos {
		status, ok := StatusDeRotulo(c.rotulo)
		assert.True(t, ok, "rótulo %q deveria ser aceito", c.rotulo)
		assert.Equal(t, c.esperado, status)
	}

	_, ok := StatusDeRotulo("QUALQUERCOISA")
	assert.False(t, ok)
}
