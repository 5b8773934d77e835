package investimento

import (
	"errors"
	"fmt"
	"time"

	"github.com/RendaCapital/api-investimentos/internal/comissao"
	"github.com/RendaCapital/api-investimentos/internal/hierarquia"
	"github.com/RendaCapital/api-investimentos/internal/parcela"
	"github.com/RendaCapital/api-investimentos/internal/serie"
	"github.com/RendaCapital/api-investimentos/internal/usuario"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrSerieNaoEncontrada indica referência a série inexistente.
	ErrSerieNaoEncontrada = errors.New("série não encontrada")
	// ErrInvestidorNaoEncontrado indica referência a investidor inexistente.
	ErrInvestidorNaoEncontrado = errors.New("investidor não encontrado")
	// ErrValorInvalido indica aporte menor ou igual a zero.
	ErrValorInvalido = errors.New("valor do investimento deve ser positivo")
	// ErrAcimaDoMaximo indica aporte acima do investimento máximo da série.
	ErrAcimaDoMaximo = errors.New("valor acima do investimento máximo da série")
)

// Service orquestra a criação de investimentos: resolve a cadeia comercial,
// calcula as comissões, materializa as parcelas e registra a captação — tudo
// dentro de UMA transação, para que falha no meio do caminho não deixe
// cronograma sem parcelas nem investimento sem rastreio.
type Service struct {
	DB          *gorm.DB
	Repo        *Repository
	Series      *serie.Repository
	Usuarios    *usuario.Repository
	Cronogramas *comissao.Repository
	Parcelas    *parcela.Repository
	Resolver    *hierarquia.Resolver
	logger      *zap.Logger
}

func NewService(db *gorm.DB, resolver *hierarquia.Resolver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		DB:          db,
		Repo:        NewRepository(db),
		Series:      serie.NewRepository(db),
		Usuarios:    usuario.NewRepository(db),
		Cronogramas: comissao.NewRepository(db),
		Parcelas:    parcela.NewRepository(db),
		Resolver:    resolver,
		logger:      logger,
	}
}

// Criar valida e cria o investimento com rastreio de hierarquia, cronogramas
// de comissão e parcelas mensais.
func (s *Service) Criar(in CriarInvestimentoDTO) (*CriacaoResponseDTO, error) {
	if !in.Valor.IsPositive() {
		return nil, ErrValorInvalido
	}

	ser, err := s.Series.FindByID(in.SerieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSerieNaoEncontrada
		}
		return nil, err
	}
	if in.Valor.LessThan(ser.InvestimentoMinimo) {
		return nil, serie.ErrAbaixoDoMinimo
	}
	if ser.InvestimentoMaximo.IsPositive() && in.Valor.GreaterThan(ser.InvestimentoMaximo) {
		return nil, ErrAcimaDoMaximo
	}

	if _, err := s.Usuarios.BuscarPorID(in.InvestidorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvestidorNaoEncontrado
		}
		return nil, err
	}

	cadeia, err := s.Resolver.Resolver(in.AssessorID)
	if err != nil {
		return nil, err
	}

	pct, err := s.percentuais(in, ser)
	if err != nil {
		return nil, err
	}

	dataInvestimento := time.Now()
	if in.DataInvestimento != "" {
		dataInvestimento, err = time.Parse("2006-01-02", in.DataInvestimento)
		if err != nil {
			return nil, fmt.Errorf("dataInvestimento inválida: %w", err)
		}
	}
	tipoJuros := in.TipoJuros
	if tipoJuros == "" {
		tipoJuros = ser.TipoJuros
	}
	if tipoJuros != serie.JurosSimples && tipoJuros != serie.JurosComposto {
		return nil, fmt.Errorf("tipoJuros inválido: %q", tipoJuros)
	}

	cronogramas, err := comissao.Calcular(in.Valor, pct, cadeia, ser.PercentualMaximoComissao, ser.PrazoMeses)
	if err != nil {
		return nil, err
	}

	inv := &Investimento{
		SerieID:          ser.ID,
		InvestidorID:     in.InvestidorID,
		AssessorID:       in.AssessorID,
		Valor:            in.Valor,
		DataInvestimento: dataInvestimento,
		DataVencimento:   dataInvestimento.AddDate(0, ser.PrazoMeses, 0),
		TaxaJuros:        ser.TaxaJuros,
		TipoJuros:        tipoJuros,
		Status:           StatusAtivo,
	}
	rastreio := montarRastreio(in.InvestidorID, in.AssessorID, cadeia)
	inicioParcelas := dataInvestimento.AddDate(0, 1, 0)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.Repo.WithDB(tx)
		if err := repo.Create(inv); err != nil {
			return err
		}

		rastreio.InvestimentoID = inv.ID
		if err := repo.CreateRastreio(rastreio); err != nil {
			return err
		}

		cronRepo := s.Cronogramas.WithDB(tx)
		parcRepo := s.Parcelas.WithDB(tx)
		for i := range cronogramas {
			cronogramas[i].InvestimentoID = inv.ID
			if err := cronRepo.Create(&cronogramas[i]); err != nil {
				return err
			}
			geradas, err := parcela.Gerar(cronogramas[i].ID, cronogramas[i].Codigo, cronogramas[i].ValorTotal, cronogramas[i].DuracaoMeses, inicioParcelas)
			if err != nil {
				return err
			}
			lote := make([]*parcela.ParcelaComissao, len(geradas))
			for j := range geradas {
				lote[j] = &geradas[j]
			}
			if err := parcRepo.CreateInBatch(lote); err != nil {
				return err
			}
		}

		return s.Series.WithDB(tx).RegistrarCaptacao(ser.ID, in.Valor)
	})
	if err != nil {
		return nil, err
	}

	resposta := &CriacaoResponseDTO{
		Investimento:  inv,
		RastreioID:    rastreio.ID,
		TotalComissao: decimal.Zero,
	}
	for _, c := range cronogramas {
		resposta.Comissoes = append(resposta.Comissoes, ResumoComissaoDTO{
			Papel:       c.Papel,
			RecebedorID: c.RecebedorID,
			Percentual:  c.Percentual,
			ValorTotal:  c.ValorTotal,
			ValorMensal: c.ValorMensal,
		})
		resposta.TotalComissao = resposta.TotalComissao.Add(c.ValorTotal)
	}

	s.logger.Info("investimento criado",
		zap.Uint("investimentoId", inv.ID),
		zap.Uint("serieId", ser.ID),
		zap.String("valor", in.Valor.StringFixed(2)),
		zap.Int("cronogramas", len(cronogramas)))

	return resposta, nil
}

// Resgatar marca o investimento como resgatado e estorna a captação.
func (s *Service) Resgatar(id uint) error {
	inv, err := s.Repo.FindByID(id)
	if err != nil {
		return err
	}
	if inv.Status != StatusAtivo {
		return fmt.Errorf("investimento %d não está ativo", id)
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.WithDB(tx).AtualizarStatus(id, StatusResgatado); err != nil {
			return err
		}
		return s.Series.WithDB(tx).EstornarCaptacao(inv.SerieID, inv.Valor)
	})
}

// Remover faz o soft delete do investimento e estorna a captação se ainda
// estava ativo.
func (s *Service) Remover(id uint) error {
	inv, err := s.Repo.FindByID(id)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.WithDB(tx).SoftDelete(id); err != nil {
			return err
		}
		if inv.Status == StatusAtivo {
			return s.Series.WithDB(tx).EstornarCaptacao(inv.SerieID, inv.Valor)
		}
		return nil
	})
}

// percentuais usa o split da requisição ou, na ausência, os perfis de
// comissão configurados para a série.
func (s *Service) percentuais(in CriarInvestimentoDTO, ser *serie.Serie) (comissao.Percentuais, error) {
	if in.Percentuais != nil {
		return *in.Percentuais, nil
	}
	perfis, err := s.Series.ListarPerfis(ser.ID)
	if err != nil {
		return comissao.Percentuais{}, err
	}
	var pct comissao.Percentuais
	for _, p := range perfis {
		switch p.Papel {
		case usuario.PapelAssessor:
			pct.Assessor = p.Percentual
		case usuario.PapelEscritorio:
			pct.Escritorio = p.Percentual
		case usuario.PapelMaster:
			pct.Master = p.Percentual
		case usuario.PapelGlobal:
			pct.Global = p.Percentual
		}
	}
	return pct, nil
}

func montarRastreio(investidorID, assessorID uint, cadeia *hierarquia.Cadeia) *HierarquiaRastreio {
	r := &HierarquiaRastreio{
		InvestidorID: investidorID,
		AssessorID:   assessorID,
	}
	if cadeia.Escritorio != nil {
		r.EscritorioID = &cadeia.Escritorio.ID
	}
	if cadeia.Master != nil {
		r.MasterID = &cadeia.Master.ID
	}
	if cadeia.Global != nil {
		r.GlobalID = &cadeia.Global.ID
	}
	return r
}
