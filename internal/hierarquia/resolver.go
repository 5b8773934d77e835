package hierarquia

import (
	"errors"
	"fmt"

	"github.com/RendaCapital/api-investimentos/internal/usuario"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNaoEncontrado indica que o usuário de partida não existe.
	ErrNaoEncontrado = errors.New("usuário de partida não encontrado")
	// ErrCicloSuspeito indica que a travessia excedeu o limite de saltos ou
	// revisitou um nó; tratado como alarme de integridade de dados.
	ErrCicloSuspeito = errors.New("possível ciclo na cadeia de superiores")
)

// MaxSaltos limita a subida na cadeia de superiores. A hierarquia observada
// tem no máximo 5 níveis; acima de 10 assumimos dado corrompido.
const MaxSaltos = 10

// Buscador é a capacidade mínima de consulta que o resolver precisa.
type Buscador interface {
	BuscarPorID(id uint) (*usuario.Usuario, error)
}

// Cadeia é o resultado da resolução: um ocupante por papel comissionável,
// ausente quando a cadeia não contém aquele papel.
type Cadeia struct {
	Assessor   *usuario.Usuario
	Escritorio *usuario.Usuario
	Master     *usuario.Usuario
	Global     *usuario.Usuario
}

// Ocupante retorna o usuário resolvido para o papel informado.
func (c *Cadeia) Ocupante(papel string) *usuario.Usuario {
	switch papel {
	case usuario.PapelAssessor:
		return c.Assessor
	case usuario.PapelEscritorio:
		return c.Escritorio
	case usuario.PapelMaster:
		return c.Master
	case usuario.PapelGlobal:
		return c.Global
	}
	return nil
}

// Alertador recebe alarmes de integridade (ciclo suspeito).
type Alertador interface {
	AlertaCicloHierarquia(usuarioID uint)
}

// Resolver caminha a cadeia de superiores a partir de um assessor e
// classifica cada nó visitado pelo papel, mantendo a primeira ocorrência.
type Resolver struct {
	buscador       Buscador
	globalPadraoID uint
	alerta         Alertador
	logger         *zap.Logger
}

// NewResolver cria um resolver. globalPadraoID é a conta "casa" que recebe
// a atribuição global quando a cadeia termina sem alcançar um global;
// zero desativa o fallback. alerta pode ser nil.
func NewResolver(b Buscador, globalPadraoID uint, alerta Alertador, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{buscador: b, globalPadraoID: globalPadraoID, alerta: alerta, logger: logger}
}

// Resolver sobe a cadeia de superiores a partir de assessorID e devolve a
// cadeia resolvida. A travessia é agnóstica ao papel do nó de partida.
func (r *Resolver) Resolver(assessorID uint) (*Cadeia, error) {
	atual, err := r.buscador.BuscarPorID(assessorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("id %d: %w", assessorID, ErrNaoEncontrado)
		}
		return nil, err
	}

	cadeia := &Cadeia{}
	visitados := map[uint]bool{}
	for saltos := 0; ; saltos++ {
		if saltos >= MaxSaltos || visitados[atual.ID] {
			r.logger.Warn("ciclo suspeito na hierarquia",
				zap.Uint("assessorId", assessorID),
				zap.Uint("usuarioId", atual.ID),
				zap.Int("saltos", saltos))
			if r.alerta != nil {
				r.alerta.AlertaCicloHierarquia(assessorID)
			}
			return nil, fmt.Errorf("id %d: %w", assessorID, ErrCicloSuspeito)
		}
		visitados[atual.ID] = true

		r.classificar(cadeia, atual)

		if atual.SuperiorID == nil {
			break
		}
		superior, err := r.buscador.BuscarPorID(*atual.SuperiorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// referência pendurada encerra a cadeia
				break
			}
			return nil, err
		}
		atual = superior
	}

	if cadeia.Global == nil && r.globalPadraoID != 0 {
		padrao, err := r.buscador.BuscarPorID(r.globalPadraoID)
		if err == nil {
			cadeia.Global = padrao
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return cadeia, nil
}

// classificar preenche o slot do papel de u, mantendo a primeira ocorrência
// quando a cadeia trouxer papéis duplicados por anomalia de dados.
func (r *Resolver) classificar(c *Cadeia, u *usuario.Usuario) {
	switch u.Papel {
	case usuario.PapelAssessor:
		if c.Assessor == nil {
			c.Assessor = u
		}
	case usuario.PapelEscritorio:
		if c.Escritorio == nil {
			c.Escritorio = u
		}
	case usuario.PapelMaster:
		if c.Master == nil {
			c.Master = u
		}
	case usuario.PapelGlobal:
		if c.Global == nil {
			c.Global = u
		}
	}
}
