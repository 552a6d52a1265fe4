// Package payment 提供支付服务（模拟支付通道）
package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/errors"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/logger"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/metrics"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/qrcode"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/utils"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/models"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/repository"
)

// PaymentService 支付服务
type PaymentService struct {
	db          *gorm.DB
	paymentRepo *repository.PaymentRepository
	orderRepo   *repository.OrderRepository
	qrGenerator *qrcode.Generator
	qrBaseURL   string
}

// NewPaymentService 创建支付服务
func NewPaymentService(
	db *gorm.DB,
	paymentRepo *repository.PaymentRepository,
	orderRepo *repository.OrderRepository,
	qrGenerator *qrcode.Generator,
	qrBaseURL string,
) *PaymentService {
	return &PaymentService{
		db:          db,
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		qrGenerator: qrGenerator,
		qrBaseURL:   qrBaseURL,
	}
}

// PayRequest 支付请求
type PayRequest struct {
	Method   string  `json:"payment_method,omitempty"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency" binding:"required"`
	// Outcome 模拟通道的结果，默认成功
	Outcome string `json:"outcome,omitempty"`
}

// PayResponse 支付响应
type PayResponse struct {
	PaymentID     int64   `json:"payment_id"`
	TransactionID string  `json:"transaction_id"`
	OrderID       int64   `json:"order_id"`
	OrderStatus   string  `json:"order_status"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	FailReason    *string `json:"fail_reason,omitempty"`
	QRCode        string  `json:"qr_code,omitempty"`
}

// Pay 对订单发起模拟支付
//
// 已存在待支付记录时复用，不重复建单；支付成功与订单状态变更在同一事务内提交。
func (s *PaymentService) Pay(ctx context.Context, userID, orderID int64, req *PayRequest) (*PayResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrOrderNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if order.UserID != userID {
		return nil, errors.ErrOrderNotOwned
	}
	if order.Status == models.OrderStatusPaid {
		return nil, errors.ErrOrderAlreadyPaid
	}
	if order.Status != models.OrderStatusCreated {
		return nil, errors.ErrOrderStatusError
	}
	if !utils.AmountEqual(req.Amount, order.TotalAmount) {
		return nil, errors.ErrOrderAmountError.WithMessage("支付金额与订单总额不符")
	}
	if req.Currency != order.Currency {
		return nil, errors.ErrInvalidParams.WithMessage("支付币种与订单不一致")
	}

	method := req.Method
	if method == "" {
		method = models.PaymentMethodSimulated
	}

	payment, err := s.reuseOrCreatePayment(ctx, order, method)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if req.Outcome == OutcomeFailure {
		reason := "模拟支付失败"
		if err := s.paymentRepo.UpdateFields(ctx, payment.ID, map[string]interface{}{
			"status":      models.PaymentStatusFailed,
			"fail_reason": reason,
		}); err != nil {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		payment.Status = models.PaymentStatusFailed
		payment.FailReason = &reason

		if m := metrics.GetMetrics(); m != nil {
			m.RecordPayment(method, payment.Status)
		}
		return s.toPayResponse(order, payment), nil
	}

	// 支付成功：支付记录与订单状态在同一事务内更新
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Payment{}).Where("id = ?", payment.ID).Updates(map[string]interface{}{
			"status":  models.PaymentStatusCompleted,
			"paid_at": &now,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
			"status":         models.OrderStatusPaid,
			"paid_at":        &now,
			"payment_method": method,
		}).Error
	}); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	payment.Status = models.PaymentStatusCompleted
	payment.PaidAt = &now
	order.Status = models.OrderStatusPaid

	if m := metrics.GetMetrics(); m != nil {
		m.RecordPayment(method, payment.Status)
		m.RecordOrder(order.Status)
	}
	logger.Info("订单支付成功",
		logger.OrderNo(order.OrderNo),
		logger.String("transaction_id", payment.TransactionID),
		logger.Float64("amount", payment.Amount),
	)

	return s.toPayResponse(order, payment), nil
}

// Outcome 模拟通道结果
const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)

// reuseOrCreatePayment 复用待支付记录，必要时新建
func (s *PaymentService) reuseOrCreatePayment(ctx context.Context, order *models.Order, method string) (*models.Payment, error) {
	latest, err := s.paymentRepo.GetLatestByOrderID(ctx, order.ID)
	if err == nil {
		switch latest.Status {
		case models.PaymentStatusCompleted:
			return nil, errors.ErrOrderAlreadyPaid
		case models.PaymentStatusPending:
			return latest, nil
		}
	} else if err != gorm.ErrRecordNotFound {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	payment := &models.Payment{
		OrderID:       order.ID,
		TransactionID: uuid.NewString(),
		Amount:        order.TotalAmount,
		Currency:      order.Currency,
		Method:        method,
		Status:        models.PaymentStatusPending,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return payment, nil
}

// Refund 管理员对已支付订单退款，订单与支付记录同事务更新
func (s *PaymentService) Refund(ctx context.Context, orderID int64) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrOrderNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	if order.Status != models.OrderStatusPaid {
		return errors.ErrRefundFailed.WithMessage("只有已支付订单可以退款")
	}

	payment, err := s.paymentRepo.GetLatestByOrderID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrPaymentNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	if payment.Status != models.PaymentStatusCompleted {
		return errors.ErrRefundFailed.WithMessage("支付记录不是已完成状态")
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Payment{}).Where("id = ?", payment.ID).Updates(map[string]interface{}{
			"status":      models.PaymentStatusRefunded,
			"refunded_at": &now,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", models.OrderStatusRefunded).Error
	}); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	if m := metrics.GetMetrics(); m != nil {
		m.RecordPayment(payment.Method, models.PaymentStatusRefunded)
		m.RecordOrder(models.OrderStatusRefunded)
	}
	logger.Info("订单已退款", logger.OrderNo(order.OrderNo), logger.String("transaction_id", payment.TransactionID))
	return nil
}

// ListByOrder 查询订单的支付记录，仅本人或管理员可见
func (s *PaymentService) ListByOrder(ctx context.Context, userID, orderID int64, isAdmin bool) ([]*models.Payment, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrOrderNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if !isAdmin && order.UserID != userID {
		return nil, errors.ErrOrderNotOwned
	}

	payments, err := s.paymentRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return payments, nil
}

// toPayResponse 转换为支付响应
func (s *PaymentService) toPayResponse(order *models.Order, payment *models.Payment) *PayResponse {
	resp := &PayResponse{
		PaymentID:     payment.ID,
		TransactionID: payment.TransactionID,
		OrderID:       order.ID,
		OrderStatus:   order.Status,
		Status:        payment.Status,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		FailReason:    payment.FailReason,
	}

	if s.qrGenerator != nil && payment.Status == models.PaymentStatusCompleted {
		content := fmt.Sprintf("%s/%s", s.qrBaseURL, payment.TransactionID)
		dataURL, err := s.qrGenerator.GenerateDataURL(content)
		if err != nil {
			logger.Warn("生成支付二维码失败", logger.String("transaction_id", payment.TransactionID), logger.Err(err))
		} else {
			resp.QRCode = dataURL
		}
	}
	return resp
}
