package modules

import (
	"fmt"

	"golang.org/x/text/language"
)

// DefaultLanguage es el idioma de los mensajes cuando no hay coincidencia.
const DefaultLanguage = "es"

var (
	supportedTags = []language.Tag{language.Spanish, language.English}
	supportedKeys = []string{"es", "en"}
	matcher       = language.NewMatcher(supportedTags)
)

// MatchLanguage elige "es" o "en" a partir de uno o más valores tipo Accept-Language.
func MatchLanguage(accept ...string) string {
	_, idx := language.MatchStrings(matcher, accept...)
	if idx < 0 || idx >= len(supportedKeys) {
		return DefaultLanguage
	}
	return supportedKeys[idx]
}

var upgradeTemplates = map[string]string{
	"es": "%s no está incluido en tu plan actual. Actualiza al plan %s o superior para habilitarlo.",
	"en": "%s is not included in your current plan. Upgrade to the %s plan or higher to enable it.",
}

var tierLabels = map[string]map[PlanTier]string{
	"es": {TierFree: "Gratis", TierStarter: "Starter", TierPro: "Pro", TierEnterprise: "Empresarial"},
	"en": {TierFree: "Free", TierStarter: "Starter", TierPro: "Pro", TierEnterprise: "Enterprise"},
}

// TierLabel devuelve el nombre comercial del nivel en el idioma dado.
func TierLabel(t PlanTier, lang string) string {
	labels, ok := tierLabels[lang]
	if !ok {
		labels = tierLabels[DefaultLanguage]
	}
	if s, ok := labels[t]; ok {
		return s
	}
	return t.String()
}

// UpgradeMessage devuelve el aviso que se muestra en lugar del contenido de un módulo
// deshabilitado: nombra el módulo y el plan mínimo que lo incluye.
func UpgradeMessage(m ModuleName, lang string) string {
	tpl, ok := upgradeTemplates[lang]
	if !ok {
		lang = DefaultLanguage
		tpl = upgradeTemplates[lang]
	}
	e := Describe(m)
	return fmt.Sprintf(tpl, e.Name(lang), TierLabel(e.MinimumTiers[0], lang))
}
