package i18n

import (
	"fmt"
	"strings"
)

// Language represents a supported language.
type Language string

const (
	// English is the English language.
	English Language = "en"
	// German is the German language.
	German Language = "de"
)

// DefaultLanguage is the fallback language.
const DefaultLanguage = Language(English)

// translations maps language codes to translation keys and their values. Descriptions are markdown.
var translations = map[Language]map[string]string{
	English: {
		"app.title":             "Iron Quest",
		"app.tagline":           "Every set counts.",
		"language.picker.label": "Language",
		"language.name.en":      "English",
		"language.name.de":      "Deutsch",

		"section.character":    "Character",
		"section.attributes":   "Attributes",
		"section.mutation":     "Mutation of the week",
		"section.adaptive":     "Training plan",
		"section.bosses":       "Boss fights",
		"section.achievements": "Achievements",
		"section.skills":       "Skill trees",
		"section.quests":       "Daily quests",
		"section.entries":      "Recent entries",
		"section.log":          "Log training",
		"section.settings":     "Settings",

		"label.level":       "Level",
		"label.week":        "Week",
		"label.block":       "Block",
		"label.xp":          "XP",
		"label.today":       "Today",
		"label.total":       "Total",
		"label.streak":      "Streak",
		"label.best_streak": "Best streak",
		"label.points":      "Skill points",
		"label.stars":       "Stars",
		"label.challenge":   "Challenge mode",
		"label.start_date":  "Start date",
		"label.exercise":    "Exercise",
		"label.type":        "Type",
		"label.sets":        "Sets",
		"label.minutes":     "Minutes",
		"label.date":        "Date",
		"label.multiplier":  "Multiplier",
		"label.on":          "on",
		"label.off":         "off",

		"cli.logged":   "Logged %s for %d XP (%s)",
		"cli.granted":  "Granted %d XP",
		"cli.done":     "Done.",
		"cli.no_entry": "No entries yet.",

		"action.log":          "Log",
		"action.rest":         "Log rest day",
		"action.complete":     "Complete",
		"action.clear_boss":   "Clear boss",
		"action.unlock":       "Unlock",
		"action.delete":       "Delete",
		"action.save":         "Save",
		"action.toggle":       "Toggle",
		"qualifier.near_fail": "Near failure",
		"qualifier.strict":    "Strict technique",
		"qualifier.paused":    "Paused reps",

		"type.multi_joint":  "Multi-joint",
		"type.unilateral":   "Unilateral",
		"type.core":         "Core",
		"type.conditioning": "Conditioning",
		"type.complex":      "Complex",
		"type.neat":         "Everyday movement",
		"type.rest":         "Rest day",
		"type.quest":        "Quest",
		"type.boss_workout": "Boss workout",
		"type.boss_clear":   "Boss cleared",
		"type.achievement":  "Achievement",

		"stat.STR":  "Strength",
		"stat.STA":  "Stability",
		"stat.END":  "Endurance",
		"stat.MOB":  "Mobility",
		"stat.NEAT": "Everyday movement",

		"title.recruit":  "Recruit",
		"title.squire":   "Squire",
		"title.warrior":  "Warrior",
		"title.veteran":  "Veteran",
		"title.champion": "Champion",
		"title.legend":   "Legend",

		"mutation.none":                   "No mutation",
		"mutation.berserker":              "Berserker",
		"mutation.berserker.description":  "Strength work earns **10%** more XP.",
		"mutation.marathon":               "Marathon",
		"mutation.marathon.description":   "Endurance work earns **15%** more XP.",
		"mutation.iron_lungs":             "Iron lungs",
		"mutation.iron_lungs.description": "Stability work earns **10%** and endurance work **5%** more XP.",
		"mutation.flow_state":             "Flow state",
		"mutation.flow_state.description": "Mobility work earns **15%** more XP.",
		"mutation.wanderer":               "Wanderer",
		"mutation.wanderer.description":   "Everyday movement earns **25%** more XP.",

		"verdict.no_history": "No history yet. Start with the base plan.",
		"verdict.elite":      "Elite week. Add a set and two reps.",
		"verdict.strong":     "Strong week. Add a set and a rep.",
		"verdict.deload":     "Light week. Deload by a set and a rep.",
		"verdict.stable":     "Steady week. Keep the plan.",

		"boss.status.locked":  "Locked",
		"boss.status.open":    "Open",
		"boss.status.cleared": "Cleared",

		"boss.gatekeeper":   "The Gatekeeper",
		"boss.iron_golem":   "Iron Golem",
		"boss.storm_runner": "Storm Runner",
		"boss.twin_wardens": "Twin Wardens",
		"boss.hydra":        "Hydra",
		"boss.iron_king":    "The Iron King",

		"boss.step.squat_5x5":           "Squat 5x5",
		"boss.step.pushups_50":          "50 push-ups",
		"boss.step.plank_3min":          "Plank for 3 minutes",
		"boss.step.deadlift_5x5":        "Deadlift 5x5",
		"boss.step.rows_4x10":           "Rows 4x10",
		"boss.step.carry_5min":          "Loaded carry for 5 minutes",
		"boss.step.mobility_15":         "15 minutes of mobility",
		"boss.step.intervals_10":        "10 intervals",
		"boss.step.burpees_50":          "50 burpees",
		"boss.step.burpees_100":         "100 burpees",
		"boss.step.lunges_100":          "100 lunges",
		"boss.step.split_squat_4x10":    "Split squat 4x10",
		"boss.step.single_arm_row_4x10": "Single arm row 4x10",
		"boss.step.step_ups_100":        "100 step-ups",
		"boss.step.side_plank_2min":     "Side plank for 2 minutes",
		"boss.step.complex_5_rounds":    "5 rounds of a complex",
		"boss.step.pullups_30":          "30 pull-ups",
		"boss.step.run_5k":              "Run 5 km",

		"achievement.iron_week":    "Iron week",
		"achievement.double_star":  "Double star",
		"achievement.triple_crown": "Triple crown",
		"achievement.quest_master": "Quest master",

		"quest.mobility_10": "10 minutes of mobility",
		"quest.steps_8k":    "8000 steps",
		"quest.protein":     "Hit your protein target",

		"skill.grip":          "Grip",
		"skill.bracing":       "Bracing",
		"skill.leg_drive":     "Leg drive",
		"skill.lockout":       "Lockout",
		"skill.titan":         "Titan",
		"skill.balance":       "Balance",
		"skill.control":       "Control",
		"skill.symmetry":      "Symmetry",
		"skill.stability":     "Stability",
		"skill.pillar":        "Pillar",
		"skill.breathing":     "Breathing",
		"skill.anti_rotation": "Anti-rotation",
		"skill.hollow":        "Hollow body",
		"skill.dragon_flag":   "Dragon flag",
		"skill.iron_core":     "Iron core",
		"skill.pacing":        "Pacing",
		"skill.threshold":     "Threshold",
		"skill.recovery":      "Recovery",
		"skill.vo2":           "VO2 max",
		"skill.engine":        "Engine",
		"skill.flow":          "Flow",
		"skill.transitions":   "Transitions",
		"skill.density":       "Density",
		"skill.endurance":     "Endurance",
		"skill.juggernaut":    "Juggernaut",
	},
	German: {
		"app.title":             "Iron Quest",
		"app.tagline":           "Jeder Satz zählt.",
		"language.picker.label": "Sprache",
		"language.name.en":      "English",
		"language.name.de":      "Deutsch",

		"section.character":    "Charakter",
		"section.attributes":   "Attribute",
		"section.mutation":     "Mutation der Woche",
		"section.adaptive":     "Trainingsplan",
		"section.bosses":       "Bosskämpfe",
		"section.achievements": "Erfolge",
		"section.skills":       "Skillbäume",
		"section.quests":       "Tagesquests",
		"section.entries":      "Letzte Einträge",
		"section.log":          "Training eintragen",
		"section.settings":     "Einstellungen",

		"label.level":       "Level",
		"label.week":        "Woche",
		"label.block":       "Block",
		"label.xp":          "XP",
		"label.today":       "Heute",
		"label.total":       "Gesamt",
		"label.streak":      "Serie",
		"label.best_streak": "Beste Serie",
		"label.points":      "Skillpunkte",
		"label.stars":       "Sterne",
		"label.challenge":   "Challenge-Modus",
		"label.start_date":  "Startdatum",
		"label.exercise":    "Übung",
		"label.type":        "Typ",
		"label.sets":        "Sätze",
		"label.minutes":     "Minuten",
		"label.date":        "Datum",
		"label.multiplier":  "Multiplikator",
		"label.on":          "an",
		"label.off":         "aus",

		"cli.logged":   "%s eingetragen: %d XP (%s)",
		"cli.granted":  "%d XP erhalten",
		"cli.done":     "Erledigt.",
		"cli.no_entry": "Noch keine Einträge.",

		"action.log":          "Eintragen",
		"action.rest":         "Ruhetag eintragen",
		"action.complete":     "Erledigt",
		"action.clear_boss":   "Boss besiegen",
		"action.unlock":       "Freischalten",
		"action.delete":       "Löschen",
		"action.save":         "Speichern",
		"action.toggle":       "Umschalten",
		"qualifier.near_fail": "Bis kurz vor Muskelversagen",
		"qualifier.strict":    "Saubere Technik",
		"qualifier.paused":    "Pausierte Wiederholungen",

		"type.multi_joint":  "Mehrgelenkig",
		"type.unilateral":   "Unilateral",
		"type.core":         "Core",
		"type.conditioning": "Kondition",
		"type.complex":      "Komplex",
		"type.neat":         "Alltagsbewegung",
		"type.rest":         "Ruhetag",
		"type.quest":        "Quest",
		"type.boss_workout": "Boss-Training",
		"type.boss_clear":   "Boss besiegt",
		"type.achievement":  "Erfolg",

		"stat.STR":  "Kraft",
		"stat.STA":  "Stabilität",
		"stat.END":  "Ausdauer",
		"stat.MOB":  "Mobilität",
		"stat.NEAT": "Alltagsbewegung",

		"title.recruit":  "Rekrut",
		"title.squire":   "Knappe",
		"title.warrior":  "Krieger",
		"title.veteran":  "Veteran",
		"title.champion": "Champion",
		"title.legend":   "Legende",

		"mutation.none":                   "Keine Mutation",
		"mutation.berserker":              "Berserker",
		"mutation.berserker.description":  "Krafttraining bringt **10%** mehr XP.",
		"mutation.marathon":               "Marathon",
		"mutation.marathon.description":   "Ausdauertraining bringt **15%** mehr XP.",
		"mutation.iron_lungs":             "Eiserne Lunge",
		"mutation.iron_lungs.description": "Stabilität bringt **10%** und Ausdauer **5%** mehr XP.",
		"mutation.flow_state":             "Flow",
		"mutation.flow_state.description": "Mobilität bringt **15%** mehr XP.",
		"mutation.wanderer":               "Wanderer",
		"mutation.wanderer.description":   "Alltagsbewegung bringt **25%** mehr XP.",

		"verdict.no_history": "Noch keine Historie. Starte mit dem Grundplan.",
		"verdict.elite":      "Elite-Woche. Ein Satz und zwei Wiederholungen mehr.",
		"verdict.strong":     "Starke Woche. Ein Satz und eine Wiederholung mehr.",
		"verdict.deload":     "Leichte Woche. Ein Satz und eine Wiederholung weniger.",
		"verdict.stable":     "Stabile Woche. Plan beibehalten.",

		"boss.status.locked":  "Gesperrt",
		"boss.status.open":    "Offen",
		"boss.status.cleared": "Besiegt",

		"boss.gatekeeper":   "Der Torwächter",
		"boss.iron_golem":   "Eisengolem",
		"boss.storm_runner": "Sturmläufer",
		"boss.twin_wardens": "Die Zwillingswächter",
		"boss.hydra":        "Hydra",
		"boss.iron_king":    "Der Eiserne König",

		"boss.step.squat_5x5":           "Kniebeuge 5x5",
		"boss.step.pushups_50":          "50 Liegestütze",
		"boss.step.plank_3min":          "3 Minuten Unterarmstütz",
		"boss.step.deadlift_5x5":        "Kreuzheben 5x5",
		"boss.step.rows_4x10":           "Rudern 4x10",
		"boss.step.carry_5min":          "5 Minuten Farmer's Walk",
		"boss.step.mobility_15":         "15 Minuten Mobilität",
		"boss.step.intervals_10":        "10 Intervalle",
		"boss.step.burpees_50":          "50 Burpees",
		"boss.step.burpees_100":         "100 Burpees",
		"boss.step.lunges_100":          "100 Ausfallschritte",
		"boss.step.split_squat_4x10":    "Split Squat 4x10",
		"boss.step.single_arm_row_4x10": "Einarmiges Rudern 4x10",
		"boss.step.step_ups_100":        "100 Step-ups",
		"boss.step.side_plank_2min":     "2 Minuten Seitstütz",
		"boss.step.complex_5_rounds":    "5 Runden Komplex",
		"boss.step.pullups_30":          "30 Klimmzüge",
		"boss.step.run_5k":              "5 km laufen",

		"achievement.iron_week":    "Eiserne Woche",
		"achievement.double_star":  "Doppelstern",
		"achievement.triple_crown": "Dreifachkrone",
		"achievement.quest_master": "Questmeister",

		"quest.mobility_10": "10 Minuten Mobilität",
		"quest.steps_8k":    "8000 Schritte",
		"quest.protein":     "Proteinziel erreicht",

		"skill.grip":          "Griffkraft",
		"skill.bracing":       "Rumpfspannung",
		"skill.leg_drive":     "Beinantrieb",
		"skill.lockout":       "Lockout",
		"skill.titan":         "Titan",
		"skill.balance":       "Gleichgewicht",
		"skill.control":       "Kontrolle",
		"skill.symmetry":      "Symmetrie",
		"skill.stability":     "Stabilität",
		"skill.pillar":        "Säule",
		"skill.breathing":     "Atmung",
		"skill.anti_rotation": "Anti-Rotation",
		"skill.hollow":        "Hollow Body",
		"skill.dragon_flag":   "Dragon Flag",
		"skill.iron_core":     "Eiserner Rumpf",
		"skill.pacing":        "Tempo",
		"skill.threshold":     "Schwelle",
		"skill.recovery":      "Erholung",
		"skill.vo2":           "VO2max",
		"skill.engine":        "Motor",
		"skill.flow":          "Flow",
		"skill.transitions":   "Übergänge",
		"skill.density":       "Dichte",
		"skill.endurance":     "Ausdauer",
		"skill.juggernaut":    "Koloss",
	},
}

// SupportedLanguages returns a list of all supported languages.
func SupportedLanguages() []Language {
	return []Language{English, German}
}

// IsSupported checks if a language is supported.
func IsSupported(lang Language) bool {
	_, ok := translations[lang]
	return ok
}

// Match resolves a language code such as "de" or "de-DE".
func Match(code string) (Language, bool) {
	base, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(code)), "-")
	lang := Language(base)
	return lang, IsSupported(lang)
}

// Parse is like Match but yields the default language for unsupported codes.
func Parse(code string) Language {
	if lang, ok := Match(code); ok {
		return lang
	}
	return DefaultLanguage
}

// Translate returns the translation for the given key in the specified language.
// If the key is not found, it falls back to the default language.
// If still not found, it returns the key itself.
func Translate(lang Language, key string) string {
	// Try the requested language.
	if langTranslations, ok := translations[lang]; ok {
		if translation, ok := langTranslations[key]; ok {
			return translation
		}
	}

	// Fallback to default language.
	if lang != DefaultLanguage {
		if langTranslations, ok := translations[DefaultLanguage]; ok {
			if translation, ok := langTranslations[key]; ok {
				return translation
			}
		}
	}

	// Return the key itself if no translation found.
	return key
}

// Label translates a catalog id within a namespace, for example Label(German, "type", "core").
func Label(lang Language, namespace, id string) string {
	return Translate(lang, fmt.Sprintf("%s.%s", namespace, id))
}
