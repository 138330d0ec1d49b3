package queue

import (
	"context"
	"fmt"

	intake_errors "form-intake/pkg/errors"

	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
)

// messageSender is the part of *azservicebus.Sender used here.
type messageSender interface {
	SendMessage(ctx context.Context, message *azservicebus.Message, options *azservicebus.SendMessageOptions) error
	Close(ctx context.Context) error
}

// senderFactory opens senders for a queue and owns the underlying connection.
type senderFactory interface {
	NewSender(queueName string, options *azservicebus.NewSenderOptions) (messageSender, error)
	Close(ctx context.Context) error
}

type serviceBusClient struct {
	client *azservicebus.Client
}

func (c serviceBusClient) NewSender(queueName string, options *azservicebus.NewSenderOptions) (messageSender, error) {
	sender, err := c.client.NewSender(queueName, options)
	if err != nil {
		return nil, err
	}
	return sender, nil
}

func (c serviceBusClient) Close(ctx context.Context) error {
	return c.client.Close(ctx)
}

// ServiceBusPublisher opens a sender for every message and closes it right after.
// Submission volume is low; a busier gateway would keep one sender per queue.
type ServiceBusPublisher struct {
	senders senderFactory
}

func NewServiceBusPublisher(connectionString string) (*ServiceBusPublisher, error) {
	client, err := azservicebus.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("service bus client: %w", err)
	}
	return &ServiceBusPublisher{senders: serviceBusClient{client: client}}, nil
}

func (p *ServiceBusPublisher) Publish(ctx context.Context, queueName string, payload []byte) error {
	sender, err := p.senders.NewSender(queueName, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", intake_errors.ErrPublishFailed, err)
	}
	defer sender.Close(context.WithoutCancel(ctx))

	contentType := "application/json"
	msg := &azservicebus.Message{
		Body:        payload,
		ContentType: &contentType,
	}
	if err := sender.SendMessage(ctx, msg, nil); err != nil {
		return fmt.Errorf("%w: %w", intake_errors.ErrPublishFailed, err)
	}
	return nil
}

func (p *ServiceBusPublisher) Close() error {
	return p.senders.Close(context.Background())
}
