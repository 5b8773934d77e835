package parcela

import "strings"

// Status é a enumeração canônica do ciclo de vida de uma parcela. Os
// relatórios e o CSV de conciliação usam os rótulos em português via
// RotuloRelatorio / StatusDeRotulo.
type Status string

const (
	StatusPendente    Status = "pending"
	StatusProcessando Status = "processing"
	StatusAprovada    Status = "approved"
	StatusPaga        Status = "paid"
	StatusRejeitada   Status = "rejected"
	StatusCancelada   Status = "canceled"
	StatusErro        Status = "error"
)

// transicoes define o grafo de transições normais. paid e canceled são
// terminais; a via administrativa (Service.TransicionarAdministrativo)
// é registrada à parte no histórico.
var transicoes = map[Status][]Status{
	StatusPendente:    {StatusProcessando, StatusAprovada, StatusRejeitada, StatusCancelada, StatusErro},
	StatusProcessando: {StatusAprovada, StatusPaga, StatusRejeitada, StatusCancelada, StatusErro},
	StatusAprovada:    {StatusPaga, StatusCancelada, StatusErro},
	StatusRejeitada:   {StatusPendente},
	StatusErro:        {StatusPendente},
	StatusPaga:        nil,
	StatusCancelada:   nil,
}

// Valido informa se s é um status conhecido.
func (s Status) Valido() bool {
	_, ok := transicoes[s]
	return ok
}

// PodeIr informa se a transição s → novo é permitida no fluxo normal.
func (s Status) PodeIr(novo Status) bool {
	for _, t := range transicoes[s] {
		if t == novo {
			return true
		}
	}
	return false
}

// Terminal informa se o status encerra o fluxo normal.
func (s Status) Terminal() bool {
	return len(transicoes[s]) == 0 && s.Valido()
}

// RotuloRelatorio devolve o vocabulário externo usado em relatórios e CSV.
func (s Status) RotuloRelatorio() string {
	switch s {
	case StatusPaga:
		return "PAGO"
	case StatusCancelada:
		return "CANCELADO"
	case StatusErro, StatusRejeitada:
		return "ERRO"
	default:
		return "PENDENTE"
	}
}

// StatusDeRotulo converte o vocabulário externo (case-insensitive) no status
// canônico. ATIVO/INATIVO e VENCIDA são aceitos na importação por
// compatibilidade com exportações antigas do back-office.
func StatusDeRotulo(rotulo string) (Status, bool) {
	switch strings.ToUpper(strings.TrimSpace(rotulo)) {
	case "PAGO":
		return StatusPaga, true
	case "PENDENTE", "ATIVO", "VENCIDA":
		return StatusPendente, true
	case "CANCELADO", "INATIVO":
		return StatusCancelada, true
	case "ERRO":
		return StatusErro, true
	}
	return "", false
}
