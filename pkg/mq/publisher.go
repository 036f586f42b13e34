package mq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"unisports/backend/config"
)

// Publisher RabbitMQ topic 交换机发布器。
// 核心只负责产生"是否通知"的决策事件，投递由外部消费者完成。
// Publisher 为 nil 时所有发布调用安全降级为 no-op（与 Redis 降级策略一致）。
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	logger   *zap.Logger
}

// NewPublisher 建立连接并声明 topic 交换机。
// URL 为空表示未启用消息队列，返回 nil Publisher（所有发布调用 no-op），不尝试拨号。
func NewPublisher(cfg *config.MQConfig, logger *zap.Logger) (*Publisher, error) {
	if cfg.URL == "" {
		logger.Info("消息队列未配置，通知事件将不会发布")
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("连接 RabbitMQ 失败: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("打开 channel 失败: %w", err)
	}
	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("声明交换机失败: %w", err)
	}

	logger.Info("RabbitMQ 连接成功", zap.String("exchange", cfg.Exchange))

	return &Publisher{conn: conn, ch: ch, exchange: cfg.Exchange, logger: logger}, nil
}

// PublishJSON 以路由键 key 发布 JSON 事件
func (p *Publisher) PublishJSON(ctx context.Context, key string, v any) error {
	if p == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        b,
	})
	if err != nil {
		p.logger.Warn("事件发布失败", zap.String("routing_key", key), zap.Error(err))
	}
	return err
}

// Close 关闭 channel 与连接
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
