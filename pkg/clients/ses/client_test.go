package ses

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSend(t *testing.T) {
	api := &fakeSES{}
	sender := NewClientWithAPI(api, "hello@example.com")

	require.NoError(t, sender.Send(context.Background(), "lead@example.com", "Subject", "<p>Hi</p>"))

	require.NotNil(t, api.input)
	assert.Equal(t, "hello@example.com", aws.ToString(api.input.Source))
	assert.Equal(t, []string{"lead@example.com"}, api.input.Destination.ToAddresses)
	assert.Equal(t, "Subject", aws.ToString(api.input.Message.Subject.Data))
	assert.Equal(t, "<p>Hi</p>", aws.ToString(api.input.Message.Body.Html.Data))
}

func TestSendError(t *testing.T) {
	sender := NewClientWithAPI(&fakeSES{err: errors.New("throttled")}, "hello@example.com")

	err := sender.Send(context.Background(), "lead@example.com", "Subject", "<p>Hi</p>")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}
