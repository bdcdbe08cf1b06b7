package service

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/widepay/internal/cache"
	"github.com/smallbiznis/widepay/internal/clock"
	"github.com/smallbiznis/widepay/internal/config"
	"github.com/smallbiznis/widepay/internal/events"
	"github.com/smallbiznis/widepay/internal/gateway/domain"
	"github.com/smallbiznis/widepay/internal/observability/logger"
	"github.com/smallbiznis/widepay/internal/widepay"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Repo   domain.Repository
	Cfg    config.Config
	API    *widepay.Client
	Outbox *events.Outbox
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	api      *widepay.Client
	outbox   *events.Outbox
	builder  *domain.Builder
	currency string
	settings domain.Settings
	txCache  *cache.TTL[snowflake.ID, *domain.TransactionRecord]
}

func NewService(p Params) domain.Service {
	settings := domain.Settings{
		WalletID:    p.Cfg.WalletID,
		WalletToken: p.Cfg.WalletToken,
	}
	for _, verr := range domain.ValidateSettings(settings) {
		p.Log.Warn("wallet credentials incomplete, gateway calls will be rejected",
			zap.String("field", verr.Field),
			zap.String("message", verr.Message),
		)
	}

	return &Service{
		db:      p.DB,
		log:     p.Log.Named("gateway.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		api:     p.API,
		outbox:  p.Outbox,
		builder: domain.NewBuilder(p.Clock, p.Cfg.CallbackBaseURL),
		currency: strings.ToUpper(strings.TrimSpace(p.Cfg.Currency)),
		settings: settings,
		txCache:  cache.NewTTL[snowflake.ID, *domain.TransactionRecord](time.Minute),
	}
}

// CreateCharge builds and submits one charge. The protocol has no idempotency
// token, so a retry after a transport failure may duplicate the charge on the
// processor side; callers decide whether to resubmit.
func (s *Service) CreateCharge(ctx context.Context, req domain.ChargeRequest) (*domain.ChargeResult, error) {
	if errs := s.ValidateSettings(s.settings); len(errs) > 0 {
		return nil, errs
	}

	params, err := s.builder.Build(req)
	if err != nil {
		return nil, err
	}

	resp := s.api.CreateCharge(ctx, params)
	s.writeLog(ctx, "recebimentos/cobrancas/adicionar", params.Values(), resp)

	if errs := resp.Errors(); len(errs) > 0 {
		logger.FromContext(ctx).Warn("charge creation rejected",
			zap.String("client_id", req.ClientID),
			zap.Strings("errors", errs),
		)
		return nil, &domain.GatewayError{Status: resp.Status(), Messages: errs}
	}

	tx := domain.Reconcile(resp)
	record := s.newRecord(req.ClientID, "", &tx)
	record.DedupeKey = "charge:" + record.ID.String()
	if _, err := s.repo.InsertTransaction(ctx, s.db, record); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventChargeCreated, req.ClientID, record, &tx)

	return &domain.ChargeResult{
		TransactionID: tx.TransactionID,
		RedirectURL:   domain.PaymentLink(resp),
		Status:        tx.Status,
	}, nil
}

// HandleNotification resolves a webhook notification id into the canonical
// transaction state. The webhook payload itself is never trusted; the charge
// is re-fetched from the processor.
func (s *Service) HandleNotification(ctx context.Context, notificationID string) (*domain.ReconciledTransaction, error) {
	notificationID = strings.TrimSpace(notificationID)
	if notificationID == "" {
		return nil, domain.ErrInvalidNotification
	}
	if errs := s.ValidateSettings(s.settings); len(errs) > 0 {
		return nil, errs
	}

	resp := s.api.NotificationCharge(ctx, notificationID)
	s.writeLog(ctx, "recebimentos/cobrancas/notificacao", notificationValues(notificationID), resp)

	tx := domain.Reconcile(resp)
	record := s.newRecord("", notificationID, &tx)
	record.DedupeKey = "notification:" + notificationID + ":" + tx.ProcessorStatus
	if tx.Status == domain.StatusError {
		// Error reconciliations are not deduplicated; each failed
		// lookup is kept for diagnosis.
		record.DedupeKey = "notification:" + notificationID + ":error:" + record.ID.String()
	}

	inserted, err := s.repo.InsertTransaction(ctx, s.db, record)
	if err != nil {
		return nil, err
	}
	if !inserted {
		logger.FromContext(ctx).Info("duplicate notification delivery",
			zap.String("notification_id", notificationID),
			zap.String("processor_status", tx.ProcessorStatus),
		)
		return &tx, nil
	}

	s.publish(ctx, eventTypeForStatus(tx.Status), notificationID, record, &tx)
	return &tx, nil
}

func (s *Service) GetTransaction(ctx context.Context, id snowflake.ID) (*domain.TransactionRecord, error) {
	if record, ok := s.txCache.Get(id); ok {
		return record, nil
	}

	record, err := s.repo.FindTransaction(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrTransactionNotFound
	}

	// Records are insert-only, so cached reads never go stale.
	s.txCache.Set(id, record)
	return record, nil
}

func (s *Service) ValidateSettings(settings domain.Settings) domain.ValidationErrors {
	return domain.ValidateSettings(settings)
}

func (s *Service) newRecord(clientID, notificationID string, tx *domain.ReconciledTransaction) *domain.TransactionRecord {
	allocations, _ := json.Marshal(tx.Invoices)
	return &domain.TransactionRecord{
		ID:              s.genID.Generate(),
		ClientID:        clientID,
		NotificationID:  notificationID,
		TransactionID:   tx.TransactionID,
		Status:          string(tx.Status),
		ProcessorStatus: tx.ProcessorStatus,
		Amount:          domain.FormatAmount(tx.Amount),
		Currency:        s.currency,
		Allocations:     datatypes.JSON(allocations),
		ReceivedAt:      s.clock.Now(),
	}
}

// writeLog persists the raw exchange with credentials and payer documents
// masked. Failures are logged and swallowed; the log store must never fail a
// payment.
func (s *Service) writeLog(ctx context.Context, route string, request url.Values, resp *widepay.Response) {
	masked := logger.MaskForm(request)
	requestJSON, _ := json.Marshal(masked)
	responseJSON, _ := json.Marshal(map[string]any{
		"status":  resp.Status(),
		"headers": resp.Headers(),
		"body":    resp.Raw(),
	})

	entry := &domain.GatewayLog{
		ID:        s.genID.Generate(),
		Route:     route,
		Request:   datatypes.JSON(requestJSON),
		Response:  datatypes.JSON(responseJSON),
		Status:    resp.Status(),
		Success:   len(resp.Errors()) == 0,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.InsertLog(ctx, s.db, entry); err != nil {
		s.log.Warn("gateway log write failed", zap.String("route", route), zap.Error(err))
	}
}

func (s *Service) publish(ctx context.Context, eventType, key string, record *domain.TransactionRecord, tx *domain.ReconciledTransaction) {
	if s.outbox == nil {
		return
	}
	err := s.outbox.Publish(ctx, events.Event{
		Type:      eventType,
		Key:       key,
		DedupeKey: record.DedupeKey,
		Payload: map[string]any{
			"record_id":        record.ID.String(),
			"transaction_id":   tx.TransactionID,
			"status":           string(tx.Status),
			"processor_status": tx.ProcessorStatus,
			"amount":           record.Amount,
			"currency":         record.Currency,
		},
	})
	if err != nil {
		s.log.Warn("outbox publish failed", zap.String("event_type", eventType), zap.Error(err))
	}
}

func eventTypeForStatus(status domain.ChargeStatus) string {
	switch status {
	case domain.StatusApproved:
		return events.EventPaymentSettled
	case domain.StatusRefunded:
		return events.EventPaymentRefunded
	case domain.StatusDeclined:
		return events.EventPaymentDeclined
	case domain.StatusVoid:
		return events.EventPaymentVoided
	case domain.StatusPending:
		return events.EventPaymentPending
	default:
		return events.EventPaymentError
	}
}

func notificationValues(id string) url.Values {
	values := url.Values{}
	values.Set("id", id)
	return values
}
