package investimento

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/RendaCapital/api-investimentos/internal/comissao"
	"github.com/RendaCapital/api-investimentos/internal/hierarquia"
	"github.com/RendaCapital/api-investimentos/internal/parcela"
	"github.com/RendaCapital/api-investimentos/internal/serie"
	"github.com/RendaCapital/api-investimentos/internal/usuario"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func bancoDeTeste(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, usuario.Migrate(db))
	require.NoError(t, serie.Migrate(db))
	require.NoError(t, comissao.Migrate(db))
	require.NoError(t, parcela.Migrate(db))
	require.NoError(t, Migrate(db))
	return db
}

// montarCenario semeia a cadeia comercial completa e uma série aberta.
func montarCenario(t *testing.T, db *gorm.DB) *serie.Serie {
	t.Helper()
	usuarios := []usuario.Usuario{
		{Nome: "Casa", Email: "global@teste.com", Papel: usuario.PapelGlobal},
		{Nome: "Master", Email: "master@teste.com", Papel: usuario.PapelMaster, SuperiorID: ptr(1)},
		{Nome: "Escritório", Email: "escritorio@teste.com", Papel: usuario.PapelEscritorio, SuperiorID: ptr(2)},
		{Nome: "Assessor", Email: "assessor@teste.com", Papel: usuario.PapelAssessor, SuperiorID: ptr(3)},
		{Nome: "Investidor", Email: "investidor@teste.com", Papel: usuario.PapelInvestidor},
	}
	for i := range usuarios {
		require.NoError(t, db.Create(&usuarios[i]).Error)
	}

	ser := &serie.Serie{
		DebentureID:              1,
		Nome:                     "Série A",
		InvestimentoMinimo:       dec("1000.00"),
		InvestimentoMaximo:       dec("100000.00"),
		CaptacaoMaxima:           dec("50000.00"),
		PrazoMeses:               12,
		TaxaJuros:                dec("1.10"),
		TipoJuros:                serie.JurosSimples,
		PercentualMaximoComissao: dec("3.00"),
	}
	require.NoError(t, db.Create(ser).Error)
	return ser
}

func ptr(id uint) *uint { return &id }

func novoService(t *testing.T, db *gorm.DB) *Service {
	t.Helper()
	resolver := hierarquia.NewResolver(usuario.NewRepository(db), 1, nil, nil)
	return NewService(db, resolver, nil)
}

func TestCriarFluxoCompleto(t *testing.T) {
	db := bancoDeTeste(t)
	ser := montarCenario(t, db)
	svc := novoService(t, db)

	resposta, err := svc.Criar(CriarInvestimentoDTO{
		SerieID:          ser.ID,
		InvestidorID:     5,
		AssessorID:       4,
		Valor:            dec("10000.00"),
		DataInvestimento: "2025-07-10",
		Percentuais: &comissao.Percentuais{
			Assessor:   dec("1.5"),
			Escritorio: dec("0.5"),
			Master:     dec("0.3"),
		},
	})
	require.NoError(t, err)

	inv := resposta.Investimento
	assert.Equal(t, StatusAtivo, inv.Status)
	assert.Equal(t, "2025-07-10", inv.DataInvestimento.Format("2006-01-02"))
	assert.Equal(t, "2026-07-10", inv.DataVencimento.Format("2006-01-02"))

	// rastreio imutável congela a cadeia resolvida
	var rastreio HierarquiaRastreio
	require.NoError(t, db.Where("investimento_id = ?", inv.ID).First(&rastreio).Error)
	assert.Equal(t, uint(5), rastreio.InvestidorID)
	assert.Equal(t, uint(4), rastreio.AssessorID)
	require.NotNil(t, rastreio.EscritorioID)
	assert.Equal(t, uint(3), *rastreio.EscritorioID)
	require.NotNil(t, rastreio.MasterID)
	assert.Equal(t, uint(2), *rastreio.MasterID)
	require.NotNil(t, rastreio.GlobalID)
	assert.Equal(t, uint(1), *rastreio.GlobalID)

	// um cronograma por papel com percentual, 12 parcelas cada
	require.Len(t, resposta.Comissoes, 3)
	assert.True(t, resposta.TotalComissao.Equal(dec("230.00")),
		"total de comissão %s", resposta.TotalComissao)

	var cronogramas []comissao.Cronograma
	require.NoError(t, db.Where("investimento_id = ?", inv.ID).Find(&cronogramas).Error)
	require.Len(t, cronogramas, 3)

	var totalParcelas int64
	require.NoError(t, db.Model(&parcela.ParcelaComissao{}).Count(&totalParcelas).Error)
	assert.Equal(t, int64(36), totalParcelas)

	for _, c := range cronogramas {
		parcelas, err := parcela.NewRepository(db).ListByCronogramaID(c.ID)
		require.NoError(t, err)
		require.Len(t, parcelas, 12)
		soma := decimal.Zero
		for _, p := range parcelas {
			soma = soma.Add(p.Valor)
			assert.Equal(t, parcela.StatusPendente, p.Status)
		}
		assert.True(t, soma.Equal(c.ValorTotal), "papel %s: soma %s ≠ total %s", c.Papel, soma, c.ValorTotal)
		// primeira parcela vence um mês após o aporte
		assert.Equal(t, "2025-08-10", parcelas[0].Vencimento.Format("2006-01-02"))
	}

	// captação da série atualizada
	atual, err := serie.NewRepository(db).FindByID(ser.ID)
	require.NoError(t, err)
	assert.True(t, atual.CaptacaoAtual.Equal(dec("10000.00")))
}

func TestCriarUsaPerfisDaSerie(t *testing.T) {
	db := bancoDeTeste(t)
	ser := montarCenario(t, db)
	svc := novoService(t, db)

	perfis := []serie.PerfilComissao{
		{SerieID: ser.ID, Papel: usuario.PapelAssessor, Percentual: dec("2.0")},
		{SerieID: ser.ID, Papel: usuario.PapelMaster, Percentual: dec("0.5")},
	}
	for i := range perfis {
		require.NoError(t, db.Create(&perfis[i]).Error)
	}

	resposta, err := svc.Criar(CriarInvestimentoDTO{
		SerieID:      ser.ID,
		InvestidorID: 5,
		AssessorID:   4,
		Valor:        dec("5000.00"),
	})
	require.NoError(t, err)
	require.Len(t, resposta.Comissoes, 2)
	assert.True(t, resposta.TotalComissao.Equal(dec("125.00")))
}

func TestCriarTetoExcedidoNaoPersisteNada(t *testing.T) {
	db := bancoDeTeste(t)
	ser := montarCenario(t, db)
	svc := novoService(t, db)

	_, err := svc.Criar(CriarInvestimentoDTO{
		SerieID:      ser.ID,
		InvestidorID: 5,
		AssessorID:   4,
		Valor:        dec("10000.00"),
		Percentuais: &comissao.Percentuais{
			Assessor:   dec("2.0"),
			Escritorio: dec("1.0"),
			Master:     dec("0.5"), // soma 3.5 > teto 3.0
		},
	})
	require.ErrorIs(t, err, comissao.ErrTetoExcedido)

	var quantos int64
	require.NoError(t, db.Model(&Investimento{}).Count(&quantos).Error)
	assert.Zero(t, quantos)
}

func TestCriarAbaixoDoMinimo(t *testing.T) {
	db := bancoDeTeste(t)
	ser := montarCenario(t, db)
	svc := novoService(t, db)

	_, err := svc.Criar(CriarInvestimentoDTO{
		SerieID:      ser.ID,
		InvestidorID: 5,
		AssessorID:   4,
		Valor:        dec("999.99"),
	})
	assert.ErrorIs(t, err, serie.ErrAbaixoDoMinimo)
}

func TestCriarAcimaDoMaximo(t *testing.T) {
	db := bancoDeTeste(t)
	ser := montarCenario(t, db)
	svc := novoService(t, db)

	_, err := svc.Criar(CriarInvestimentoDTO{
		SerieID:      ser.ID,
		InvestidorID: 5,
		AssessorID:   4,
		Valor:        dec("100000.01"),
	})
	assert.ErrorIs(t, err, ErrAcimaDoMaximo)
}

func TestCriarCaptacaoExcedidaDesfazTudo(t *testing.T) {
	db := bancoDeTeste(t)
	montarCenario(t, db)
	svc := novoService(t, db)

	lotada := &serie.Serie{
		DebentureID:              1,
		Nome:                     "Série quase cheia",
		InvestimentoMinimo:       dec("1000.00"),
		InvestimentoMaximo:       dec("100000.00"),
		CaptacaoMaxima:           dec("20000.00"),
		CaptacaoAtual:            dec("15000.00"),
		PrazoMeses:               12,
		TaxaJuros:                dec("1.10"),
		TipoJuros:                serie.JurosSimples,
		PercentualMaximoComissao: dec("3.00"),
	}
	require.NoError(t, db.Create(lotada).Error)

	_, err := svc.Criar(CriarInvestimentoDTO{
		SerieID:      lotada.ID,
		InvestidorID: 5,
		AssessorID:   4,
		Valor:        dec("10000.00"), // 15000 + 10000 > 20000
		Percentuais:  &comissao.Percentuais{Assessor: dec("1.0")},
	})
	require.ErrorIs(t, err, serie.ErrCaptacaoExcedida)

	// a transação desfez investimento, cronogramas e parcelas
	var investimentos, cronogramas, parcelas int64
	require.NoError(t, db.Model(&Investimento{}).Count(&investimentos).Error)
	require.NoError(t, db.Model(&comissao.Cronograma{}).Count(&cronogramas).Error)
	require.NoError(t, db.Model(&parcela.ParcelaComissao{}).Count(&parcelas).Error)
	assert.Zero(t, investimentos)
	assert.Zero(t, cronogramas)
	assert.Zero(t, parcelas)
}

func TestCriarSerieInexistente(t *testing.T) {
	db := bancoDeTeste(t)
	montarCenario(t, db)
	svc := novoService(t, db)

	_, err := svc.Criar(CriarInvestimentoDTO{
		SerieID:      999,
		InvestidorID: 5,
		AssessorID:   4,
		Valor:        dec("2000.00"),
	})
	assert.ErrorIs(t, err, ErrSerieNaoEncontrada)
}

func TestCriarAssessorInexistente(t *testing.T) {
	db := bancoDeTeste(t)
	ser := montarCenario(t, db)
	svc := novoService(t, db)

	_, err := svc.Criar(CriarInvestimentoDTO{
		SerieID:      ser.ID,
		InvestidorID: 5,
		AssessorID:   777,
		Valor:        dec("2000.00"),
	})
	assert.ErrorIs(t, err, hierarquia.ErrNaoEncontrado)
}

func TestResgatarEstornaCaptacao(t *testing.T) {
	db := bancoDeTeste(t)
	ser := montarCenario(t, db)
	svc := novoService(t, db)

	resposta, err := svc.Criar(CriarInvestimentoDTO{
		SerieID:      ser.ID,
		InvestidorID: 5,
		AssessorID:   4,
		Valor:        dec("10000.00"),
		Percentuais:  &comissao.Percentuais{Assessor: dec("1.0")},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Resgatar(resposta.Investimento.ID))

	inv, err := svc.Repo.FindByID(resposta.Investimento.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusResgatado, inv.Status)

	ser2, err := serie.NewRepository(db).FindByID(ser.ID)
	require.NoError(t, err)
	assert.True(t, ser2.CaptacaoAtual.IsZero(), "captação atual %s", ser2.CaptacaoAtual)

	// resgatar de novo falha: não está mais ativo
	assert.Error(t, svc.Resgatar(resposta.Investimento.ID))
}
