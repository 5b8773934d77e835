package conciliacao

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/RendaCapital/api-investimentos/internal/comissao"
	"github.com/RendaCapital/api-investimentos/internal/parcela"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MaxMensagensErro limita quantas mensagens de erro a importação devolve,
// para manter a resposta pequena em arquivos grandes.
const MaxMensagensErro = 20

// Exportacao é o resultado da geração do CSV.
type Exportacao struct {
	Conteudo    string          `json:"conteudo"`
	Quantidade  int             `json:"quantidade"`
	ValorTotal  decimal.Decimal `json:"valorTotal"`
	NomeArquivo string          `json:"nomeArquivo"`
}

// ResultadoImportacao é o manifesto da importação: a falha de uma linha
// nunca aborta o lote.
type ResultadoImportacao struct {
	Processadas int      `json:"processadas"`
	Sucessos    int      `json:"sucessos"`
	Erros       int      `json:"erros"`
	Mensagens   []string `json:"mensagens"`
}

// Service implementa a exportação e a importação de conciliação bancária.
type Service struct {
	DB          *gorm.DB
	Repo        *Repository
	Parcelas    *parcela.Repository
	Cronogramas *comissao.Repository
	logger      *zap.Logger
}

func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		DB:          db,
		Repo:        NewRepository(db),
		Parcelas:    parcela.NewRepository(db),
		Cronogramas: comissao.NewRepository(db),
		logger:      logger,
	}
}

/* ============================== Exportação ============================== */

// Exportar serializa as parcelas (filtro opcional por mês/ano de
// vencimento) no layout do back-office. Parcelas vencidas e não pagas saem
// com status VENCIDA.
func (s *Service) Exportar(mes, ano int) (*Exportacao, error) {
	linhas, err := s.Repo.ListarParaExportacao(mes, ano)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Cabecalho); err != nil {
		return nil, err
	}

	agora := time.Now()
	total := decimal.Zero
	for _, l := range linhas {
		pagamento := ""
		if l.DataPagamento != nil {
			pagamento = formatarData(*l.DataPagamento)
		}
		rotulo := l.Status.RotuloRelatorio()
		if rotulo == "PENDENTE" && l.Vencimento.Before(agora) {
			rotulo = "VENCIDA"
		}
		registro := []string{
			l.CodigoPagamento,
			l.NomeInvestidor,
			formatarValorBR(l.ValorInvestimento),
			l.NomeRecebedor,
			strconv.Itoa(l.Numero),
			formatarValorBR(l.ValorParcela),
			l.TipoChavePix,
			l.ChavePix,
			formatarData(l.Vencimento),
			rotulo,
			pagamento,
		}
		if err := w.Write(registro); err != nil {
			return nil, err
		}
		total = total.Add(l.ValorParcela)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	nome := "comissoes"
	if ano != 0 {
		nome = fmt.Sprintf("%s_%04d", nome, ano)
		if mes != 0 {
			nome = fmt.Sprintf("%s_%02d", nome, mes)
		}
	}

	return &Exportacao{
		Conteudo:    buf.String(),
		Quantidade:  len(linhas),
		ValorTotal:  total,
		NomeArquivo: nome + ".csv",
	}, nil
}

/* ============================== Importação ============================== */

// Importar processa o CSV linha a linha. limite > 0 interrompe o lote após
// esse número de linhas de dados; erros são contados por linha (número
// 1-based do arquivo) sem abortar as demais.
func (s *Service) Importar(r io.Reader, limite int) (*ResultadoImportacao, error) {
	resultado := &ResultadoImportacao{Mensagens: []string{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	numLinha := 0
	primeira := true
	for scanner.Scan() {
		numLinha++
		texto := strings.TrimSpace(scanner.Text())
		if texto == "" {
			continue
		}
		if primeira {
			primeira = false
			if pareceCabecalho(texto) {
				continue
			}
		}
		if limite > 0 && resultado.Processadas >= limite {
			break
		}
		resultado.Processadas++

		if err := s.importarLinha(texto); err != nil {
			resultado.Erros++
			if len(resultado.Mensagens) < MaxMensagensErro {
				resultado.Mensagens = append(resultado.Mensagens, fmt.Sprintf("linha %d: %v", numLinha, err))
			}
			continue
		}
		resultado.Sucessos++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	s.logger.Info("importação de conciliação concluída",
		zap.Int("processadas", resultado.Processadas),
		zap.Int("sucessos", resultado.Sucessos),
		zap.Int("erros", resultado.Erros))

	return resultado, nil
}

// importarLinha valida e aplica uma linha de dados; cada linha roda em sua
// própria transação.
func (s *Service) importarLinha(texto string) error {
	campos, err := AnalisarLinha(texto)
	if err != nil {
		return err
	}
	if len(campos) < len(Cabecalho) {
		return fmt.Errorf("esperava %d colunas, encontrou %d", len(Cabecalho), len(campos))
	}

	codigo := strings.TrimSpace(campos[0])
	if codigo == "" {
		return errors.New("ID Pagamento vazio")
	}
	status, ok := parcela.StatusDeRotulo(campos[9])
	if !ok {
		return fmt.Errorf("status inválido: %q", campos[9])
	}

	var dataPagamento *time.Time
	if status == parcela.StatusPaga {
		if txt := strings.TrimSpace(campos[10]); txt != "" {
			d, err := analisarData(txt)
			if err != nil {
				return fmt.Errorf("data de pagamento inválida: %q", txt)
			}
			dataPagamento = &d
		} else {
			agora := time.Now()
			dataPagamento = &agora
		}
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		parcRepo := s.Parcelas.WithDB(tx)

		p, err := parcRepo.FindByCodigoPagamento(codigo)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			p, err = s.criarParcelaFallback(tx, codigo)
		}
		if err != nil {
			return err
		}

		// reimportação do mesmo arquivo é um no-op por linha
		if p.Status == status {
			return nil
		}

		agora := time.Now()
		atualiza := map[string]interface{}{
			"status":             status,
			"status_alterado_em": agora,
			"updated_at":         agora,
		}
		if status == parcela.StatusPaga {
			atualiza["data_pagamento"] = dataPagamento
		} else {
			atualiza["data_pagamento"] = nil
		}
		if err := tx.Model(&parcela.ParcelaComissao{}).Where("id = ?", p.ID).Updates(atualiza).Error; err != nil {
			return err
		}

		return parcRepo.RegistrarHistorico(&parcela.HistoricoParcela{
			ParcelaID: p.ID,
			De:        p.Status,
			Para:      status,
			Autor:     "conciliacao",
		})
	})
}

// criarParcelaFallback reconstrói a parcela a partir do identificador de
// pagamento quando a linha pertence a uma exportação anterior à criação da
// parcela: o identificador embute o prefixo do código do cronograma e o
// número sequencial.
func (s *Service) criarParcelaFallback(tx *gorm.DB, codigo string) (*parcela.ParcelaComissao, error) {
	partes := strings.Split(codigo, "-")
	if len(partes) != 3 || partes[0] != "PAG" {
		return nil, fmt.Errorf("nenhuma parcela encontrada para %q", codigo)
	}
	numero, err := strconv.Atoi(partes[2])
	if err != nil || numero < 1 {
		return nil, fmt.Errorf("nenhuma parcela encontrada para %q", codigo)
	}

	cron, err := s.Cronogramas.WithDB(tx).FindByPrefixoCodigo(partes[1])
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("nenhum cronograma encontrado para %q", codigo)
		}
		return nil, err
	}
	if numero > cron.DuracaoMeses {
		return nil, fmt.Errorf("parcela %d fora da duração do cronograma (%d meses)", numero, cron.DuracaoMeses)
	}

	nova := &parcela.ParcelaComissao{
		CronogramaID:     cron.ID,
		CodigoPagamento:  parcela.CodigoPagamento(cron.Codigo, numero),
		Numero:           numero,
		Valor:            parcela.ValorDaParcela(cron.ValorTotal, cron.DuracaoMeses, numero),
		Vencimento:       cron.CreatedAt.AddDate(0, numero, 0),
		Status:           parcela.StatusPendente,
		StatusAlteradoEm: time.Now(),
	}
	if err := tx.Create(nova).Error; err != nil {
		return nil, err
	}

	s.logger.Info("parcela recriada pela conciliação",
		zap.String("codigoPagamento", nova.CodigoPagamento),
		zap.Uint("cronogramaId", cron.ID))

	return nova, nil
}
