package review

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/ai/azopenai"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/hashicorp/go-hclog"

	"github.com/codecompass/engine/internal/model"
)

// AzureService reviews snippets through an Azure OpenAI chat deployment.
type AzureService struct {
	client     *azopenai.Client
	deployment string
	logger     hclog.Logger
}

// NewAzureService creates a review service backed by Azure OpenAI. The
// deployment is used for all subsequent completion calls.
func NewAzureService(endpoint, apiKey, deployment string, logger hclog.Logger) (*AzureService, error) {
	client, err := azopenai.NewClientWithKeyCredential(endpoint, azcore.NewKeyCredential(apiKey), nil)
	if err != nil {
		return nil, fmt.Errorf("creating Azure OpenAI client: %w", err)
	}
	return &AzureService{
		client:     client,
		deployment: deployment,
		logger:     loggerOrNull(logger),
	}, nil
}

// Review implements Service.
func (s *AzureService) Review(ctx context.Context, language, content string) []model.ReviewOpportunity {
	resp, err := s.client.GetChatCompletions(
		ctx,
		azopenai.ChatCompletionsOptions{
			DeploymentName: to.Ptr(s.deployment),
			Messages: []azopenai.ChatRequestMessageClassification{
				&azopenai.ChatRequestUserMessage{
					Content: azopenai.NewChatRequestUserMessageContent(buildPrompt(language, content)),
				},
			},
		},
		nil,
	)
	if err != nil {
		s.logger.Warn("review request failed", "error", err)
		return nil
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil || resp.Choices[0].Message.Content == nil {
		s.logger.Debug("review returned no completion")
		return nil
	}
	return parseReply(*resp.Choices[0].Message.Content)
}
