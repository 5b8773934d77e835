package notificacao

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
)

// Webhook envia alertas de integridade para a URL configurada em
// ALERTA_WEBHOOK_URL. URL vazia desativa o envio.
type Webhook struct {
	URL    string
	logger *zap.Logger
}

func NewWebhook(logger *zap.Logger) *Webhook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Webhook{URL: os.Getenv("ALERTA_WEBHOOK_URL"), logger: logger}
}

// AlertaCicloHierarquia avisa o back-office que a resolução de hierarquia
// suspeitou de um ciclo partindo do usuário informado.
func (wh *Webhook) AlertaCicloHierarquia(usuarioID uint) {
	if wh.URL == "" {
		return
	}
	payload := map[string]string{
		"mensagem": fmt.Sprintf("Alerta: possível ciclo na hierarquia comercial a partir do usuário %d", usuarioID),
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(wh.URL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		wh.logger.Warn("erro ao enviar webhook de alerta", zap.Error(err))
		return
	}
	defer resp.Body.Close()
}
