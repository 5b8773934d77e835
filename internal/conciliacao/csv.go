package conciliacao

import (
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Cabecalho é o contrato de colunas do CSV de conciliação, nas duas
// direções. A ordem e os rótulos em português são fixos por compatibilidade
// com o ferramental do back-office.
var Cabecalho = []string{
	"ID Pagamento",
	"Nome do Investidor",
	"Valor do Investimento",
	"Destinatário",
	"Parcela",
	"Valor da Comissão Mensal",
	"Tipo de Chave PIX",
	"PIX",
	"Data de Vencimento",
	"Status",
	"Data do Pagamento",
}

// AnalisarLinha interpreta uma linha do CSV tolerando o defeito conhecido de
// exportações antigas: a linha inteira embrulhada em um par extra de aspas,
// com as aspas internas duplicadas. Primeiro tenta a leitura normal; se o
// resultado não se decompõe em campos, remove o embrulho externo, desfaz a
// duplicação de aspas e tenta de novo.
func AnalisarLinha(linha string) ([]string, error) {
	linha = strings.TrimRight(linha, "\r\n")
	campos, err := lerLinhaCSV(linha)
	if err == nil && len(campos) > 1 {
		return campos, nil
	}

	if len(linha) >= 2 && strings.HasPrefix(linha, `"`) && strings.HasSuffix(linha, `"`) {
		interna := strings.ReplaceAll(linha[1:len(linha)-1], `""`, `"`)
		if campos2, err2 := lerLinhaCSV(interna); err2 == nil && len(campos2) > 1 {
			return campos2, nil
		}
	}

	if err != nil {
		return nil, fmt.Errorf("linha CSV malformada: %w", err)
	}
	return campos, nil
}

func lerLinhaCSV(linha string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(linha))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	return r.Read()
}

// pareceCabecalho detecta a linha de cabeçalho para pulá-la na importação.
func pareceCabecalho(linha string) bool {
	return strings.Contains(linha, Cabecalho[0])
}

// formatarValorBR escreve um valor monetário com vírgula decimal.
func formatarValorBR(v decimal.Decimal) string {
	return strings.Replace(v.StringFixed(2), ".", ",", 1)
}

// analisarValorBR lê um valor monetário com vírgula decimal, aceitando
// ponto como separador de milhar.
func analisarValorBR(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	return decimal.NewFromString(s)
}

// formatarData escreve datas no padrão dia/mês/ano do back-office.
func formatarData(t time.Time) string {
	return t.Format("02/01/2006")
}

func analisarData(s string) (time.Time, error) {
	return time.Parse("02/01/2006", strings.TrimSpace(s))
}
