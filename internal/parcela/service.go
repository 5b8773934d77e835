package parcela

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrConflitoStatus indica corrida perdida: o status mudou entre a
	// leitura e a gravação condicional.
	ErrConflitoStatus = errors.New("status da parcela foi alterado por outra operação")
)

// TransicaoInvalidaError carrega o status atual e o pretendido para o
// chamador decidir se tenta outro destino.
type TransicaoInvalidaError struct {
	De   Status
	Para Status
}

func (e *TransicaoInvalidaError) Error() string {
	return fmt.Sprintf("transição de status não permitida: %s → %s", e.De, e.Para)
}

// FalhaLote descreve o motivo da falha de um item em operação em lote.
type FalhaLote struct {
	ParcelaID uint   `json:"parcelaId"`
	Motivo    string `json:"motivo"`
}

// ResultadoLote é o manifesto por item de uma transição em lote.
type ResultadoLote struct {
	Sucessos []uint      `json:"sucessos"`
	Falhas   []FalhaLote `json:"falhas"`
}

// Service aplica as regras do ciclo de vida de pagamento das parcelas.
type Service struct {
	Repo   *Repository
	logger *zap.Logger
}

func NewService(repo *Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{Repo: repo, logger: logger}
}

// Transicionar valida e aplica uma transição de status. A validação e a
// gravação formam uma única operação atômica via UPDATE condicional, para
// que duas requisições concorrentes não apliquem transições conflitantes.
// Quando novo é paga e nenhum dataPagamento é informado, o momento atual é
// usado.
func (s *Service) Transicionar(id uint, novo Status, notas, autor string, dataPagamento *time.Time) (*ParcelaComissao, error) {
	if !novo.Valido() {
		return nil, fmt.Errorf("status desconhecido: %q", novo)
	}
	p, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !p.Status.PodeIr(novo) {
		return nil, &TransicaoInvalidaError{De: p.Status, Para: novo}
	}

	agora := time.Now()
	campos := map[string]interface{}{
		"status":             novo,
		"status_alterado_em": agora,
		"updated_at":         agora,
	}
	if notas != "" {
		campos["observacoes"] = notas
	}
	if novo == StatusPaga {
		if dataPagamento == nil {
			dataPagamento = &agora
		}
		campos["data_pagamento"] = *dataPagamento
	}

	// gravação e histórico na mesma transação: transição aplicada sem
	// linha de auditoria não pode existir
	err = s.Repo.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.Repo.WithDB(tx)
		afetadas, err := repo.AtualizarStatusCondicional(id, p.Status, campos)
		if err != nil {
			return err
		}
		if afetadas == 0 {
			return ErrConflitoStatus
		}
		return repo.RegistrarHistorico(&HistoricoParcela{
			ParcelaID: id,
			De:        p.Status,
			Para:      novo,
			Notas:     notas,
			Autor:     autor,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.Repo.FindByID(id)
}

// TransicionarEmLote aplica a transição a cada parcela em modo best-effort
// e devolve o manifesto de sucessos e falhas por id; uma falha nunca
// interrompe os demais itens.
func (s *Service) TransicionarEmLote(ids []uint, novo Status, notas, autor string) ResultadoLote {
	resultado := ResultadoLote{Sucessos: []uint{}, Falhas: []FalhaLote{}}
	for _, id := range ids {
		if _, err := s.Transicionar(id, novo, notas, autor, nil); err != nil {
			motivo := err.Error()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				motivo = "parcela não encontrada"
			}
			resultado.Falhas = append(resultado.Falhas, FalhaLote{ParcelaID: id, Motivo: motivo})
			continue
		}
		resultado.Sucessos = append(resultado.Sucessos, id)
	}
	return resultado
}

// TransicionarAdministrativo força um status fora do grafo normal (ex.:
// reabrir uma parcela paga por engano). Fica registrado como transição
// administrativa no histórico e gera log próprio.
func (s *Service) TransicionarAdministrativo(id uint, novo Status, notas, autor string) (*ParcelaComissao, error) {
	if !novo.Valido() {
		return nil, fmt.Errorf("status desconhecido: %q", novo)
	}
	p, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	agora := time.Now()
	campos := map[string]interface{}{
		"status":             novo,
		"status_alterado_em": agora,
		"updated_at":         agora,
	}
	if notas != "" {
		campos["observacoes"] = notas
	}
	if novo != StatusPaga {
		campos["data_pagamento"] = nil
	}

	err = s.Repo.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.Repo.WithDB(tx)
		afetadas, err := repo.AtualizarStatusCondicional(id, p.Status, campos)
		if err != nil {
			return err
		}
		if afetadas == 0 {
			return ErrConflitoStatus
		}
		return repo.RegistrarHistorico(&HistoricoParcela{
			ParcelaID:      id,
			De:             p.Status,
			Para:           novo,
			Notas:          notas,
			Autor:          autor,
			Administrativa: true,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Warn("transição administrativa de parcela",
		zap.Uint("parcelaId", id),
		zap.String("de", string(p.Status)),
		zap.String("para", string(novo)),
		zap.String("autor", autor))

	return s.Repo.FindByID(id)
}
