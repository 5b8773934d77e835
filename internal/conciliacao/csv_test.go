package conciliacao

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalisarLinhaNormal(t *testing.T) {
	campos, err := AnalisarLinha(`PAG-abc12345-1,Maria Silva,"10.000,00",João,1,"41,67",cpf,123.456.789-00,01/08/2025,PENDENTE,`)
	require.NoError(t, err)
	require.Len(t, campos, 11)
	assert.Equal(t, "PAG-abc12345-1", campos[0])
	assert.Equal(t, "10.000,00", campos[2])
	assert.Equal(t, "41,67", campos[5])
}

func TestAnalisarLinhaEmbrulhadaEmAspas(t *testing.T) {
	// defeito conhecido: linha inteira entre aspas, aspas internas duplicadas
	linha := `"PAG-abc12345-1,Maria Silva,""10.000,00"",João,1,""41,67"",cpf,123.456.789-00,01/08/2025,PAGO,15/08/2025"`
	campos, err := AnalisarLinha(linha)
	require.NoError(t, err)
	require.Len(t, campos, 11)
	assert.Equal(t, "PAG-abc12345-1", campos[0])
	assert.Equal(t, "10.000,00", campos[2])
	assert.Equal(t, "PAGO", campos[9])
	assert.Equal(t, "15/08/2025", campos[10])
}

func TestAnalisarLinhaComQuebraDeLinha(t *testing.T) {
	campos, err := AnalisarLinha("PAG-x-1,a,b,c,1,d,e,f,01/01/2025,PAGO,\r\n")
	require.NoError(t, err)
	require.Len(t, campos, 11)
	assert.Equal(t, "", campos[10])
}

func TestPareceCabecalho(t *testing.T) {
	assert.True(t, pareceCabecalho("ID Pagamento,Nome do Investidor,Valor do Investimento"))
	assert.False(t, pareceCabecalho("PAG-abc12345-1,Maria,100"))
}

func TestValorBR(t *testing.T) {
	assert.Equal(t, "1234,50", formatarValorBR(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "0,01", formatarValorBR(decimal.RequireFromString("0.01")))

	v, err := analisarValorBR("10.000,00")
	require.NoError(t, err)
	assert.True(t, v.Equal(decimal.RequireFromString("10000")))

	v, err = analisarValorBR("41,67")
	require.NoError(t, err)
	assert.True(t, v.Equal(decimal.RequireFromString("41.67")))

	v, err = analisarValorBR("  ")
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	_, err = analisarValorBR("abc")
	assert.Error(t, err)
}

func TestDataBR(t *testing.T) {
	d := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "01/08/2025", formatarData(d))

	lida, err := analisarData(" 01/08/2025 ")
	require.NoError(t, err)
	assert.True(t, lida.Equal(d))

	_, err = analisarData("2025-08-01")
	assert.Error(t, err)
}
