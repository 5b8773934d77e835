package parcela

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestGerarSomaExata(t *testing.T) {
	// divisões que não fecham: a última parcela absorve a sobra
	casos := []struct {
		total   string
		duracao int
	}{
		{"1000.00", 3},
		{"50.00", 12},
		{"150.00", 12},
		{"0.01", 3},
		{"999.99", 7},
	}
	inicio := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	for _, c := range casos {
		parcelas, err := Gerar(1, "c0ffee00-0000-0000-0000-000000000000", dec(c.total), c.duracao, inicio)
		require.NoError(t, err)
		require.Len(t, parcelas, c.duracao)

		soma := decimal.Zero
		for _, p := range parcelas {
			soma = soma.Add(p.Valor)
		}
		assert.Equal(t, dec(c.total).StringFixed(2), soma.StringFixed(2),
			"total %s em %d meses", c.total, c.duracao)
	}
}

func TestGerarSplitDoCenario(t *testing.T) {
	// R$50,00 em 12 meses → 11× 4,17 e 1× 4,13
	inicio := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	parcelas, err := Gerar(1, "c0ffee00", dec("50.00"), 12, inicio)
	require.NoError(t, err)

	for i := 0; i < 11; i++ {
		assert.Equal(t, "4.17", parcelas[i].Valor.StringFixed(2))
	}
	assert.Equal(t, "4.13", parcelas[11].Valor.StringFixed(2))
}

func TestGerarMesesConsecutivos(t *testing.T) {
	inicio := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)
	parcelas, err := Gerar(7, "deadbeef", dec("300.00"), 3, inicio)
	require.NoError(t, err)

	assert.Equal(t, time.November, parcelas[0].Vencimento.Month())
	assert.Equal(t, time.December, parcelas[1].Vencimento.Month())
	assert.Equal(t, time.January, parcelas[2].Vencimento.Month())
	assert.Equal(t, 2026, parcelas[2].Vencimento.Year())
}

func TestGerarEstadoInicial(t *testing.T) {
	parcelas, err := Gerar(7, "deadbeef-0000", dec("300.00"), 3, time.Now())
	require.NoError(t, err)

	for i, p := range parcelas {
		assert.Equal(t, StatusPendente, p.Status)
		assert.Equal(t, i+1, p.Numero)
		assert.Equal(t, uint(7), p.CronogramaID)
		assert.Nil(t, p.DataPagamento)
	}
}

func TestGerarCodigosDeterministicos(t *testing.T) {
	parcelas, err := Gerar(7, "c0ffee99-1111-2222-3333-444444444444", dec("300.00"), 3, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "PAG-c0ffee99-1", parcelas[0].CodigoPagamento)
	assert.Equal(t, "PAG-c0ffee99-2", parcelas[1].CodigoPagamento)
	assert.Equal(t, "PAG-c0ffee99-3", parcelas[2].CodigoPagamento)

	// re-derivação idempotente
	repetidas, err := Gerar(7, "c0ffee99-1111-2222-3333-444444444444", dec("300.00"), 3, time.Now())
	require.NoError(t, err)
	for i := range parcelas {
		assert.Equal(t, parcelas[i].CodigoPagamento, repetidas[i].CodigoPagamento)
	}
}

func TestGerarEntradaInvalida(t *testing.T) {
	_, err := Gerar(1, "abc", dec("100.00"), 0, time.Now())
	assert.Error(t, err)

	_, err = Gerar(1, "abc", dec("-1.00"), 3, time.Now())
	assert.Error(t, err)
}
