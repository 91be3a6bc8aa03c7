package dashboard

import (
	"context"
	"errors"

	"askdash/internal/identity"

	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"
)

// Asker performs the single outbound call and returns the response text.
type Asker interface {
	Ask(ctx context.Context, req Request) (string, error)
}

// AskerFunc adapts a plain function to Asker.
type AskerFunc func(ctx context.Context, req Request) (string, error)

func (f AskerFunc) Ask(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Reply is the settled outcome of a Call.
type Reply struct {
	Seq  uint64
	Text string
	Err  error
}

// Call is one issued submission. Running it performs the outbound request;
// the caller decides where (inline, goroutine, tea.Cmd) and with which
// context.
type Call struct {
	Request Request
	seq     uint64
	asker   Asker
}

// Run blocks until the asker returns. Panics are converted into errors so a
// broken asker still settles the call.
func (c *Call) Run(ctx context.Context) Reply {
	reply := Reply{Seq: c.seq}
	recovered := panics.Try(func() {
		reply.Text, reply.Err = c.asker.Ask(ctx, c.Request)
	})
	if recovered != nil {
		reply.Text = ""
		reply.Err = recovered.AsError()
	}
	return reply
}

// Controller owns the dashboard State and the identity/model context that is
// attached to every request.
type Controller struct {
	state     State
	user      identity.User
	llmChoice string
	asker     Asker
	logger    *zap.Logger
	seq       uint64
	pending   uint64
}

func NewController(asker Asker, user identity.User, llmChoice string, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if asker == nil {
		asker = NopAsker
	}
	return &Controller{
		user:      user,
		llmChoice: llmChoice,
		asker:     asker,
		logger:    logger,
	}
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) User() identity.User {
	return c.user
}

func (c *Controller) LLMChoice() string {
	return c.llmChoice
}

func (c *Controller) SelectPrompt(id string) {
	c.state.SelectPrompt(id)
}

func (c *Controller) EditCustomQuestion(text string) {
	c.state.EditCustomQuestion(text)
}

func (c *Controller) CanSubmit() bool {
	return c.state.CanSubmit()
}

// Submit moves the controller to AwaitingReply and returns the Call to run.
// It returns false, and changes nothing, when CanSubmit is false.
func (c *Controller) Submit() (*Call, bool) {
	if !c.state.CanSubmit() {
		return nil, false
	}
	c.state.Loading = true
	c.seq++
	c.pending = c.seq
	req := Request{
		Question:  c.state.Question(),
		User:      c.user,
		LLMChoice: c.llmChoice,
	}
	c.logger.Debug("submitting question",
		zap.Uint64("seq", c.seq),
		zap.String("prompt", c.state.SelectedPromptID),
		zap.String("llm_choice", c.llmChoice),
	)
	return &Call{Request: req, seq: c.seq, asker: c.asker}, true
}

// Settle applies a finished call and returns the controller to Idle. Replies
// for anything other than the outstanding call are ignored.
func (c *Controller) Settle(reply Reply) bool {
	if !c.state.Loading || reply.Seq != c.pending {
		c.logger.Debug("ignoring stale reply", zap.Uint64("seq", reply.Seq), zap.Uint64("pending", c.pending))
		return false
	}
	if reply.Err != nil {
		c.logger.Error("ask request failed",
			zap.Uint64("seq", reply.Seq),
			zap.String("prompt", c.state.SelectedPromptID),
			zap.Error(reply.Err),
		)
		c.state.Response = FailureMessage
	} else {
		c.state.Response = reply.Text
	}
	c.state.Loading = false
	return true
}

// SubmitAndWait runs a whole submission inline. It reports whether a call was
// issued; failures are absorbed into the response text.
func (c *Controller) SubmitAndWait(ctx context.Context) bool {
	call, ok := c.Submit()
	if !ok {
		return false
	}
	c.Settle(call.Run(ctx))
	return true
}

// ErrNoAsker is returned by NopAsker.
var ErrNoAsker = errors.New("dashboard: no asker configured")

// NopAsker fails every call. NewController falls back to it when given nil.
var NopAsker = AskerFunc(func(context.Context, Request) (string, error) {
	return "", ErrNoAsker
})
