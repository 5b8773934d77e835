package comissao

import (
	"errors"
	"fmt"

	"github.com/RendaCapital/api-investimentos/internal/hierarquia"
	"github.com/RendaCapital/api-investimentos/internal/usuario"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrTetoExcedido indica que a soma dos percentuais solicitados passa
	// do percentual máximo de comissão da série.
	ErrTetoExcedido = errors.New("soma dos percentuais excede o teto de comissão da série")
	// ErrPercentualInvalido indica percentual negativo ou fora de [0, 100].
	ErrPercentualInvalido = errors.New("percentual de comissão inválido")
)

// Percentuais é o split de comissão solicitado por papel, em valores de
// 0 a 100 com até duas casas decimais.
type Percentuais struct {
	Assessor   decimal.Decimal `json:"assessor"`
	Escritorio decimal.Decimal `json:"escritorio"`
	Master     decimal.Decimal `json:"master"`
	Global     decimal.Decimal `json:"global"`
}

// Soma retorna a soma de todos os percentuais solicitados.
func (p Percentuais) Soma() decimal.Decimal {
	return p.Assessor.Add(p.Escritorio).Add(p.Master).Add(p.Global)
}

func (p Percentuais) porPapel() []struct {
	papel string
	pct   decimal.Decimal
} {
	return []struct {
		papel string
		pct   decimal.Decimal
	}{
		{usuario.PapelAssessor, p.Assessor},
		{usuario.PapelEscritorio, p.Escritorio},
		{usuario.PapelMaster, p.Master},
		{usuario.PapelGlobal, p.Global},
	}
}

// Calcular produz um cronograma de comissão por papel com percentual
// positivo e recebedor resolvido na cadeia. Papéis ausentes da cadeia são
// pulados mesmo com percentual solicitado (o percentual é perdido, regra de
// negócio vigente). Valida o teto da série antes de produzir qualquer linha:
// violação rejeita o cálculo inteiro.
//
// A função é pura: não persiste nada; a materialização das parcelas é do
// chamador.
func Calcular(valorInvestido decimal.Decimal, pct Percentuais, cadeia *hierarquia.Cadeia, tetoPercentual decimal.Decimal, duracaoMeses int) ([]Cronograma, error) {
	if duracaoMeses <= 0 {
		return nil, fmt.Errorf("duração inválida: %d meses", duracaoMeses)
	}
	cem := decimal.NewFromInt(100)
	for _, item := range pct.porPapel() {
		if item.pct.IsNegative() || item.pct.GreaterThan(cem) {
			return nil, fmt.Errorf("%w: %s para %s", ErrPercentualInvalido, item.pct, item.papel)
		}
		// percentuais têm no máximo duas casas decimais
		if !item.pct.Equal(item.pct.Round(2)) {
			return nil, fmt.Errorf("%w: %s para %s tem mais de duas casas decimais", ErrPercentualInvalido, item.pct, item.papel)
		}
	}
	if pct.Soma().GreaterThan(tetoPercentual) {
		return nil, fmt.Errorf("%w: %s > %s", ErrTetoExcedido, pct.Soma(), tetoPercentual)
	}

	meses := decimal.NewFromInt(int64(duracaoMeses))
	var cronogramas []Cronograma
	for _, item := range pct.porPapel() {
		if !item.pct.IsPositive() {
			continue
		}
		recebedor := cadeia.Ocupante(item.papel)
		if recebedor == nil {
			continue
		}
		total := valorInvestido.Mul(item.pct).Div(cem).Round(2)
		cronogramas = append(cronogramas, Cronograma{
			Codigo:       uuid.NewString(),
			RecebedorID:  recebedor.ID,
			Papel:        item.papel,
			Percentual:   item.pct,
			ValorTotal:   total,
			DuracaoMeses: duracaoMeses,
			ValorMensal:  total.Div(meses).Round(2),
		})
	}
	return cronogramas, nil
}
