package parcela

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func bancoDeTeste(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func criarParcela(t *testing.T, repo *Repository, status Status) *ParcelaComissao {
	t.Helper()
	p := &ParcelaComissao{
		CronogramaID:     1,
		CodigoPagamento:  "PAG-teste000-" + t.Name(),
		Numero:           1,
		Valor:            dec("12.50"),
		Vencimento:       time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
		Status:           status,
		StatusAlteradoEm: time.Now(),
	}
	require.NoError(t, repo.DB.Create(p).Error)
	return p
}

func TestTransicionarFluxoNormal(t *testing.T) {
	repo := NewRepository(bancoDeTeste(t))
	svc := NewService(repo, nil)
	p := criarParcela(t, repo, StatusPendente)

	atualizada, err := svc.Transicionar(p.ID, StatusProcessando, "em processamento", "usuario:1", nil)
	require.NoError(t, err)
	assert.Equal(t, StatusProcessando, atualizada.Status)
	assert.Equal(t, "em processamento", atualizada.Observacoes)
	assert.Nil(t, atualizada.DataPagamento)

	atualizada, err = svc.Transicionar(p.ID, StatusPaga, "", "usuario:1", nil)
	require.NoError(t, err)
	assert.Equal(t, StatusPaga, atualizada.Status)
	require.NotNil(t, atualizada.DataPagamento, "pagar sem data explícita carimba o momento atual")
	assert.WithinDuration(t, time.Now(), *atualizada.DataPagamento, 5*time.Second)
}

func TestTransicionarComDataExplicita(t *testing.T) {
	repo := NewRepository(bancoDeTeste(t))
	svc := NewService(repo, nil)
	p := criarParcela(t, repo, StatusProcessando)

	pagoEm := time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)
	atualizada, err := svc.Transicionar(p.ID, StatusPaga, "", "usuario:1", &pagoEm)
	require.NoError(t, err)
	require.NotNil(t, atualizada.DataPagamento)
	assert.Equal(t, pagoEm.Format("2006-01-02"), atualizada.DataPagamento.Format("2006-01-02"))
}

func TestTransicionarInvalidaNaoAltera(t *testing.T) {
	repo := NewRepository(bancoDeTeste(t))
	svc := NewService(repo, nil)
	p := criarParcela(t, repo, StatusPendente)

	_, err := svc.Transicionar(p.ID, StatusPaga, "", "usuario:1", nil)
	var inval *TransicaoInvalidaError
	require.ErrorAs(t, err, &inval)
	assert.Equal(t, StatusPendente, inval.De)
	assert.Equal(t, StatusPaga, inval.Para)

	// o status permanece intacto
	atual, err := repo.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPendente, atual.Status)
}

func TestTransicionarStatusDesconhecido(t *testing.T) {
	repo := NewRepository(bancoDeTeste(t))
	svc := NewService(repo, nil)
	p := criarParcela(t, repo, StatusPendente)

	_, err := svc.Transicionar(p.ID, Status("inexistente"), "", "", nil)
	assert.Error(t, err)
}

func TestTransicionarNaoEncontrada(t *testing.T) {
	repo := NewRepository(bancoDeTeste(t))
	svc := NewService(repo, nil)

	_, err := svc.Transicionar(999, StatusProcessando, "", "", nil)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestTransicionarRegistraHistorico(t *testing.T) {
	repo := NewRepository(bancoDeTeste(t))
	svc := NewService(repo, nil)
	p := criarParcela(t, repo, StatusPendente)

	_, err := svc.Transicionar(p.ID, StatusAprovada, "ok", "usuario:2", nil)
	require.NoError(t, err)

	hist, err := repo.ListarHistorico(p.ID)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, StatusPendente, hist[0].De)
	assert.Equal(t, StatusAprovada, hist[0].Para)
	assert.Equal(t, "usuario:2", hist[0].Autor)
	assert.False(t, hist[0].Administrativa)
}

func TestTransicionarDesfazSemHistorico(t *testing.T) {
	repo := NewRepository(bancoDeTeste(t))
	svc := NewService(repo, nil)
	p := criarParcela(t, repo, StatusPendente)

	// sem a tabela de histórico a gravação da auditoria falha; a transição
	// inteira precisa ser desfeita
	require.NoError(t, repo.DB.Migrator().DropTable(&HistoricoParcela{}))

	_, err := svc.Transicionar(p.ID, StatusProcessando, "", "usuario:1", nil)
	require.Error(t, err)

	atual, err := repo.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPendente, atual.Status)
}

func TestTransicionarEmLoteManifesto(t *testing.T) {
	repo := NewRepository(bancoDeTeste(t))
	svc := NewService(repo, nil)

	a := criarParcela(t, repo, StatusPendente)
	b := &ParcelaComissao{
		CronogramaID:    1,
		CodigoPagamento: "PAG-teste000-b",
		Numero:          2,
		Valor:           dec("12.50"),
		Vencimento:      time.Now(),
		Status:          StatusPaga, // terminal: transição vai falhar
	}
	require.NoError(t, repo.DB.Create(b).Error)

	resultado := svc.TransicionarEmLote([]uint{a.ID, b.ID, 12345}, StatusProcessando, "", "usuario:1")

	assert.Equal(t, []uint{a.ID}, resultado.Sucessos)
	require.Len(t, resultado.Falhas, 2)
	assert.Equal(t, b.ID, resultado.Falhas[0].ParcelaID)
	assert.Equal(t, uint(12345), resultado.Falhas[1].ParcelaID)
	assert.Equal(t, "parcela não encontrada", resultado.Falhas[1].Motivo)
}

func TestTransicionarAdministrativo(t *testing.T) {
	repo := NewRepository(bancoDeTeste(t))
	svc := NewService(repo, nil)
	p := criarParcela(t, repo, StatusPaga)

	// reabertura fora do grafo normal
	atualizada, err := svc.TransicionarAdministrativo(p.ID, StatusPendente, "pagamento estornado", "usuario:9")
	require.NoError(t, err)
	assert.Equal(t, StatusPendente, atualizada.Status)
	assert.Nil(t, atualizada.DataPagamento)

	hist, err := repo.ListarHistorico(p.ID)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.True(t, hist[0].Administrativa)
}

func TestResumoPorStatus(t *testing.T) {
	repo := NewRepository(bancoDeTeste(t))

	criarParcela(t, repo, StatusPendente)
	b := &ParcelaComissao{CronogramaID: 1, CodigoPagamento: "PAG-x-2", Numero: 2, Valor: dec("10.00"), Vencimento: time.Now(), Status: StatusPendente}
	c := &ParcelaComissao{CronogramaID: 1, CodigoPagamento: "PAG-x-3", Numero: 3, Valor: dec("10.00"), Vencimento: time.Now(), Status: StatusPaga}
	require.NoError(t, repo.DB.Create(b).Error)
	require.NoError(t, repo.DB.Create(c).Error)

	resumo, err := repo.ResumoPorStatus()
	require.NoError(t, err)

	porStatus := map[Status]ResumoStatus{}
	for _, r := range resumo {
		porStatus[r.Status] = r
	}
	assert.Equal(t, int64(2), porStatus[StatusPendente].Quantidade)
	assert.Equal(t, int64(1), porStatus[StatusPaga].Quantidade)
}
