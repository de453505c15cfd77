package template

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cropfresh/cropfresh-service-notification/internal/domain"
)

func TestRenderSubstitutesVariables(t *testing.T) {
	out := Render("ORDER_MATCHED.sms", domain.English, map[string]interface{}{
		"crop":     "Tomato",
		"quantity": 50,
		"price":    25,
		"total":    1250,
	})

	assert.Contains(t, out, "Tomato")
	assert.Contains(t, out, "50")
	assert.Contains(t, out, "1250")
	assert.NotContains(t, out, "{{")
}

func TestRenderKannadaOrderMatched(t *testing.T) {
	sms := Render("ORDER_MATCHED.sms", domain.Kannada, map[string]interface{}{
		"crop":     "ಟೊಮೇಟೊ",
		"quantity": 50,
		"price":    25,
		"total":    1250,
	})
	require.Contains(t, sms, "50")
	require.Contains(t, sms, "ಖರೀದಿದಾರ")

	title := Render("ORDER_MATCHED.push_title", domain.Kannada, nil)
	assert.True(t, strings.HasPrefix(title, "🎉 ಖರೀದಿದಾರ"), "got %q", title)
}

func TestRenderFallsBackToEnglish(t *testing.T) {
	// French is not in the catalog; the English variant must be used.
	got := Render("ORDER_MATCHED.push_title", domain.Language("fr"), nil)
	want := Render("ORDER_MATCHED.push_title", domain.English, nil)
	assert.Equal(t, want, got)
}

func TestRenderUnknownKeyUsesGenericFallback(t *testing.T) {
	out := Render("NO_SUCH_KEY", domain.English, nil)
	assert.Contains(t, out, "You have a new update from CropFresh")
	assert.Contains(t, out, "NO_SUCH_KEY")
}

func TestRenderElidesMissingVariables(t *testing.T) {
	// No template may leak a raw placeholder, in any language, even when the
	// caller supplies no variables at all.
	for _, key := range Keys() {
		for _, lang := range LanguagesFor(key) {
			out := Render(key, lang, nil)
			assert.NotContains(t, out, "{{", "key=%s lang=%s", key, lang)
			assert.NotContains(t, out, "}}", "key=%s lang=%s", key, lang)
		}
	}
}

func TestEveryTemplateHasEnglish(t *testing.T) {
	for _, key := range Keys() {
		langs := LanguagesFor(key)
		require.Contains(t, langs, domain.English, "key %s has no English variant", key)
	}
}

func TestEveryNotificationTypeHasTemplates(t *testing.T) {
	types := []domain.NotificationType{
		domain.OrderMatched,
		domain.PaymentReceived,
		domain.MatchExpiring,
		domain.OrderCancelled,
		domain.QualityDispute,
		domain.HaulerEnRoute,
		domain.PickupComplete,
		domain.OrderDelivered,
		domain.DropPointAssigned,
		domain.EducationalTip,
	}
	keys := Keys()
	for _, typ := range types {
		assert.Contains(t, keys, SMSKey(typ))
		assert.Contains(t, keys, PushTitleKey(typ))
		assert.Contains(t, keys, PushBodyKey(typ))
	}
}

func TestParseLanguage(t *testing.T) {
	cases := []struct {
		code string
		want domain.Language
	}{
		{"kn", domain.Kannada},
		{"ka", domain.Kannada},
		{"kn-IN", domain.Kannada},
		{"KN", domain.Kannada},
		{"hi", domain.Hindi},
		{"ta", domain.Tamil},
		{"te", domain.Telugu},
		{"en", domain.English},
		{"fr", domain.English},
		{"", domain.English},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ParseLanguage(c.code), "code=%q", c.code)
	}
}
