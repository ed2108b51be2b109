package worker

// comprobante_worker.go
// Processes comprobante jobs from QueueComprobante: renders the invoice PDF
// and, when the client registered a correo, chains an email job with the PDF
// attached. Rendering is retried with backoff; exhausted jobs land in the DLQ.
// The factura row itself is never touched — invoices are immutable after
// creation.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/infra"
	"github.com/Jess-Moreno/easyfact-one-o-prototipo-easyfact/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ComprobanteJobPayload is the job envelope sent to QueueComprobante.
type ComprobanteJobPayload struct {
	FacturaID     uint   `json:"factura_id"`
	ClienteCorreo string `json:"cliente_correo,omitempty"`
}

// ComprobanteWorker renders invoice PDFs and chains email delivery.
type ComprobanteWorker struct {
	facturaRepo repository.FacturaRepository
	dispatcher  *Dispatcher
	rdb         *redis.Client
	empresa     string
	storagePath string
}

func NewComprobanteWorker(
	facturaRepo repository.FacturaRepository,
	dispatcher *Dispatcher,
	rdb *redis.Client,
	empresa string,
	storagePath string,
) *ComprobanteWorker {
	return &ComprobanteWorker{
		facturaRepo: facturaRepo,
		dispatcher:  dispatcher,
		rdb:         rdb,
		empresa:     empresa,
		storagePath: storagePath,
	}
}

// Process handles a single comprobante job:
//  1. Parse ComprobanteJobPayload from the job envelope
//  2. Fetch the factura (with cliente + detalles) from DB
//  3. Render the PDF with retry (3 attempts, exponential backoff)
//  4. Enqueue the email job when the client has a correo
func (w *ComprobanteWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ComprobanteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("comprobante_worker: invalid payload")
		return
	}

	factura, err := w.facturaRepo.FindByID(ctx, payload.FacturaID)
	if err != nil {
		log.Error().Err(err).Uint("factura_id", payload.FacturaID).Msg("comprobante_worker: factura not found")
		return
	}

	var pdfPath string
	renderErr := withRetry(ctx, 3, func(attempt int) error {
		path, err := infra.GenerateFacturaPDF(factura, w.empresa, w.storagePath)
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Uint("factura_id", payload.FacturaID).
				Msg("comprobante_worker: PDF attempt failed, retrying")
			return err
		}
		pdfPath = path
		return nil
	})
	if renderErr != nil {
		SendToDLQ(ctx, w.rdb, QueueComprobante, "comprobante", raw,
			fmt.Sprintf("PDF generation failed: %v", renderErr), 3)
		return
	}

	log.Info().Uint("factura_id", payload.FacturaID).Str("pdf", pdfPath).Msg("comprobante_worker: PDF generated")

	if payload.ClienteCorreo == "" {
		return
	}
	emailJob := EmailJobPayload{
		ToEmail: payload.ClienteCorreo,
		Subject: fmt.Sprintf("%s — Factura N° %d", w.empresa, factura.ID),
		Body:    fmt.Sprintf("Adjuntamos su factura N° %d por un total de $%s.", factura.ID, factura.Total.StringFixed(2)),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Error().Err(err).Uint("factura_id", payload.FacturaID).Msg("comprobante_worker: failed to enqueue email job")
	}
}

// withRetry runs fn up to maxAttempts times with exponential backoff (1s, 2s, …).
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err = fn(attempt); err == nil {
			return nil
		}
		if attempt == maxAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(1<<attempt) * time.Second):
		}
	}
	return err
}
