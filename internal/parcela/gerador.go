package parcela

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Gerar materializa as parcelas mensais de um cronograma de comissão.
// São geradas exatamente duracaoMeses parcelas, vencendo em meses
// consecutivos a partir de inicio, todas com status pendente.
//
// A divisão igual pode não fechar no total por arredondamento; a última
// parcela absorve a diferença, de modo que a soma das parcelas é sempre
// exatamente igual a valorTotal.
func Gerar(cronogramaID uint, codigoCronograma string, valorTotal decimal.Decimal, duracaoMeses int, inicio time.Time) ([]ParcelaComissao, error) {
	if duracaoMeses <= 0 {
		return nil, fmt.Errorf("duração inválida: %d meses", duracaoMeses)
	}
	if valorTotal.IsNegative() {
		return nil, fmt.Errorf("valor total negativo: %s", valorTotal)
	}

	agora := time.Now()
	parcelas := make([]ParcelaComissao, 0, duracaoMeses)
	for i := 0; i < duracaoMeses; i++ {
		parcelas = append(parcelas, ParcelaComissao{
			CronogramaID:     cronogramaID,
			CodigoPagamento:  CodigoPagamento(codigoCronograma, i+1),
			Numero:           i + 1,
			Valor:            ValorDaParcela(valorTotal, duracaoMeses, i+1),
			Vencimento:       inicio.AddDate(0, i, 0),
			Status:           StatusPendente,
			StatusAlteradoEm: agora,
		})
	}
	return parcelas, nil
}

// ValorDaParcela devolve o valor da parcela numero (1-based) na divisão de
// valorTotal em duracaoMeses. A última parcela absorve a diferença de
// arredondamento; todo caminho que materializa uma parcela individual deve
// passar por aqui para que a soma feche no total.
func ValorDaParcela(valorTotal decimal.Decimal, duracaoMeses, numero int) decimal.Decimal {
	base := valorTotal.Div(decimal.NewFromInt(int64(duracaoMeses))).Round(2)
	if numero == duracaoMeses {
		return valorTotal.Sub(base.Mul(decimal.NewFromInt(int64(duracaoMeses - 1))))
	}
	return base
}
