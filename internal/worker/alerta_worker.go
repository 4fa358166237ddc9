package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/XxProLuks/SisLanch/internal/infra"

	"github.com/rs/zerolog/log"
)

// AlertaEstoqueWorker emails the purchasing team when a product falls to or
// below its minimum stock level. SMTP calls go through the circuit breaker so
// a dead mail server does not pile up retries.
type AlertaEstoqueWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
	to     []string
}

func NewAlertaEstoqueWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, to []string) *AlertaEstoqueWorker {
	return &AlertaEstoqueWorker{mailer: mailer, cb: cb, to: to}
}

func (w *AlertaEstoqueWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload AlertaEstoquePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alerta_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}
	if len(w.to) == 0 {
		log.Warn().Msg("alerta_worker: no recipients configured — skipping")
		return nil
	}

	subject := fmt.Sprintf("[SisLanch] Estoque baixo: %s", payload.Produto)
	body := fmt.Sprintf(
		"O produto %s atingiu o estoque mínimo.\n\nEstoque atual: %d\nEstoque mínimo: %d\n\nProduto: %s",
		payload.Produto, payload.EstoqueAtual, payload.EstoqueMinimo, payload.ProdutoID)

	err := w.cb.Execute(func() error {
		return w.mailer.Send(w.to, subject, body, "", nil)
	})
	if err != nil {
		log.Error().Err(err).Str("produto", payload.Produto).Msg("alerta_worker: failed to send alert")
		return err
	}
	log.Info().Str("produto", payload.Produto).Msg("alerta_worker: alert sent")
	return nil
}
