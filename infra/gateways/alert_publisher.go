package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/giovaniif/stock-dashboard/protocols"
)

type AlertPublisherKafka struct {
	writer *kafka.Writer
}

func NewAlertPublisherKafka(brokers []string, topic string) *AlertPublisherKafka {
	return &AlertPublisherKafka{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: 5 * time.Second,
		},
	}
}

// Publish keys messages by item name so alerts for one item stay ordered within a partition.
func (p *AlertPublisherKafka) Publish(ctx context.Context, alert protocols.StockAlert) error {
	value, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(alert.ItemName),
		Value: value,
		Time:  alert.ObservedAt,
	}); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (p *AlertPublisherKafka) Close() error {
	return p.writer.Close()
}

type AlertPublisherLog struct {
	logger zerolog.Logger
}

func NewAlertPublisherLog(logger zerolog.Logger) *AlertPublisherLog {
	return &AlertPublisherLog{logger: logger}
}

func (p *AlertPublisherLog) Publish(ctx context.Context, alert protocols.StockAlert) error {
	p.logger.Warn().
		Str("item", alert.ItemName).
		Int64("balance_qty", alert.BalanceQty).
		Int64("stock_qty", alert.StockQty).
		Str("status", string(alert.Status)).
		Time("observed_at", alert.ObservedAt).
		Msg("stock alert")
	return nil
}
