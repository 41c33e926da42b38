package notification

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"dropout-srv/pkg/discord"
	"dropout-srv/pkg/log"
	pkgSmtp "dropout-srv/pkg/smtp"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []pkgSmtp.Message
	err  error
}

func (f *fakeSender) Send(ctx context.Context, msg pkgSmtp.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeDiscord struct {
	embeds []discord.MessageOptions
	err    error
}

func (f *fakeDiscord) SendEmbed(ctx context.Context, options discord.MessageOptions) error {
	f.embeds = append(f.embeds, options)
	return f.err
}

func (f *fakeDiscord) ReportBug(ctx context.Context, message string) error { return nil }
func (f *fakeDiscord) Close() error                                        { return nil }

func mustRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	return r
}

func TestRender(t *testing.T) {
	r := mustRenderer(t)

	tests := []struct {
		name        string
		n           Notification
		wantSubject string
		wantBody    []string
	}{
		{
			name: "high risk",
			n: Notification{Kind: KindHighRisk, Fields: Fields{
				StudentName: "Priya <b>", ScholarID: "CS2021", RiskScore: 8, Factors: []string{"attendance_percentage", "engagement_score"},
			}},
			wantSubject: "🚨 HIGH RISK ALERT: Priya <b> (ID: CS2021)",
			wantBody:    []string{"Priya &lt;b&gt;", "8.0/10", "<li>attendance_percentage</li>", "<strong>24 hours</strong>"},
		},
		{
			name:        "moderate risk",
			n:           Notification{Kind: KindModerateRisk, Fields: Fields{StudentName: "Ali", ScholarID: "ME07", RiskScore: 5, ResponseHours: 48}},
			wantSubject: "⚠️ Moderate Risk Alert: Ali (ID: ME07)",
			wantBody:    []string{"5.0/10", "Schedule a check-in meeting"},
		},
		{
			name:        "escalation",
			n:           Notification{Kind: KindEscalation, Fields: Fields{StudentName: "Ali", ScholarID: "ME07", HoursOverdue: 3}},
			wantSubject: "🔴 ESCALATION: Mentor SLA Breach - Ali",
			wantBody:    []string{"<strong>Assigned Mentor:</strong> Unknown", "3 hours"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Render(tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSubject, out.Subject)
			for _, want := range tt.wantBody {
				assert.Contains(t, out.HTMLBody, want)
			}
		})
	}

	_, err := r.Render(Notification{Kind: "sms"})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestEmailSendsOnePerRecipient(t *testing.T) {
	sender := &fakeSender{}
	d := NewEmail(log.NewNop(), sender, mustRenderer(t), EmailConfig{RatePerMinute: 6000, Burst: 10})

	err := d.Send(context.Background(), Notification{
		Kind:       KindEscalation,
		Recipients: []Recipient{{Name: "A", Email: "a@school.edu"}, {Name: "No mail"}, {Name: "B", Email: "b@school.edu"}},
		Fields:     Fields{StudentName: "Ali", ScholarID: "ME07", OwnerName: "Dr. Rao", HoursOverdue: 1},
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, []string{"a@school.edu"}, sender.sent[0].To)
	assert.Equal(t, []string{"b@school.edu"}, sender.sent[1].To)
	assert.True(t, strings.HasPrefix(sender.sent[0].Subject, "🔴 ESCALATION"))
}

func TestEmailWithoutAddresses(t *testing.T) {
	d := NewEmail(log.NewNop(), &fakeSender{}, mustRenderer(t), EmailConfig{})
	err := d.Send(context.Background(), Notification{Kind: KindHighRisk, Recipients: []Recipient{{Name: "x"}}})
	assert.ErrorIs(t, err, ErrNoRecipients)
}

func TestEmailBreakerOpens(t *testing.T) {
	sender := &fakeSender{err: errors.New("421 service not available")}
	d := NewEmail(log.NewNop(), sender, mustRenderer(t), EmailConfig{RatePerMinute: 6000, Burst: 20})
	n := Notification{Kind: KindModerateRisk, Recipients: []Recipient{{Email: "m@school.edu"}}}

	for i := 0; i < breakerMaxFailures; i++ {
		assert.Error(t, d.Send(context.Background(), n))
	}
	err := d.Send(context.Background(), n)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestEmailRateLimitHonoursContext(t *testing.T) {
	sender := &fakeSender{}
	d := NewEmail(log.NewNop(), sender, mustRenderer(t), EmailConfig{RatePerMinute: 1, Burst: 1})
	n := Notification{Kind: KindModerateRisk, Recipients: []Recipient{{Email: "a@x.edu"}, {Email: "b@x.edu"}}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := d.Send(ctx, n)
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestDiscordOnlyEscalations(t *testing.T) {
	fd := &fakeDiscord{}
	d := NewDiscord(log.NewNop(), fd)

	require.NoError(t, d.Send(context.Background(), Notification{Kind: KindHighRisk}))
	assert.Empty(t, fd.embeds)

	require.NoError(t, d.Send(context.Background(), Notification{
		Kind:       KindEscalation,
		Recipients: []Recipient{{Name: "Admin One"}, {Name: "Admin Two"}},
		Fields:     Fields{StudentName: "Ali", ScholarID: "ME07", HoursOverdue: 26, AlertID: "al-1"},
	}))
	require.Len(t, fd.embeds, 1)
	embed := fd.embeds[0]
	assert.Equal(t, "🔴 ESCALATION: Mentor SLA Breach - Ali", embed.Title)
	assert.Equal(t, 0x8B0000, embed.Color)
	assert.Equal(t, "Unknown", embed.Fields[1].Value)
	assert.Equal(t, "26", embed.Fields[2].Value)
	assert.Equal(t, "Admin One, Admin Two", embed.Fields[4].Value)
}

func TestBuildFieldTruncates(t *testing.T) {
	f := buildField("x", strings.Repeat("a", 2000), false)
	assert.Len(t, f.Value, fieldValueLimit)
	assert.True(t, strings.HasSuffix(f.Value, "..."))
	assert.Equal(t, "N/A", buildField("x", "", true).Value)
}

type countingDispatcher struct {
	calls int
	err   error
}

func (c *countingDispatcher) Send(ctx context.Context, n Notification) error {
	c.calls++
	return c.err
}

func TestMulti(t *testing.T) {
	failing := &countingDispatcher{err: errors.New("smtp down")}
	empty := &countingDispatcher{err: ErrNoRecipients}
	ok := &countingDispatcher{}

	err := NewMulti(failing, nil, empty, ok).Send(context.Background(), Notification{Kind: KindEscalation})
	assert.EqualError(t, err, "smtp down")
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, empty.calls)
	assert.Equal(t, 1, ok.calls)

	assert.ErrorIs(t, NewMulti().Send(context.Background(), Notification{}), ErrSenderDisabled)
}
