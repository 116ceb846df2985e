package models

// TranslationEntry is a single translation key within a page. Translations
// maps language code to translated text; a missing key means untranslated.
type TranslationEntry struct {
	Key          string            `json:"key"`
	Translations map[string]string `json:"translations"`
}

// Page is a named collection of translation entries (typically one per UI
// screen). Entry keys are unique within a page; entry order is insertion
// order.
type Page struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Entries []TranslationEntry `json:"entries"`
}

// Entry returns the entry with the given key, or nil if absent.
func (p *Page) Entry(key string) *TranslationEntry {
	for i := range p.Entries {
		if p.Entries[i].Key == key {
			return &p.Entries[i]
		}
	}
	return nil
}
