// Package languages holds the fixed table of languages offered in the
// selectors, mapping display names to the codes the backends understand.
package languages

import (
	"fmt"

	"github.com/Vovarama1992/universal_translator/internal/domain"
)

type Entry struct {
	DisplayName string `json:"name"`
	Code        string `json:"code"`
}

// Default: набор языков формы
var Default = []Entry{
	{DisplayName: "English", Code: "en"},
	{DisplayName: "Spanish", Code: "es"},
	{DisplayName: "French", Code: "fr"},
	{DisplayName: "German", Code: "de"},
	{DisplayName: "Chinese", Code: "zh-cn"},
	{DisplayName: "Arabic", Code: "ar"},
	{DisplayName: "Hindi", Code: "hi"},
	{DisplayName: "Japanese", Code: "ja"},
}

type Registry struct {
	entries []Entry
	byName  map[string]string
	byCode  map[string]string
}

func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{
		entries: make([]Entry, 0, len(entries)),
		byName:  make(map[string]string, len(entries)),
		byCode:  make(map[string]string, len(entries)),
	}

	for _, e := range entries {
		if e.DisplayName == "" || e.Code == "" {
			return nil, fmt.Errorf("language entry %+v: name and code required", e)
		}
		if _, dup := r.byName[e.DisplayName]; dup {
			return nil, fmt.Errorf("duplicate language name %q", e.DisplayName)
		}
		if _, dup := r.byCode[e.Code]; dup {
			return nil, fmt.Errorf("duplicate language code %q", e.Code)
		}
		r.byName[e.DisplayName] = e.Code
		r.byCode[e.Code] = e.DisplayName
		r.entries = append(r.entries, e)
	}

	return r, nil
}

// MustDefault: реестр по умолчанию, таблица статическая и валидная
func MustDefault() *Registry {
	r, err := NewRegistry(Default...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) Code(name string) (string, error) {
	code, ok := r.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownLanguage, name)
	}
	return code, nil
}

func (r *Registry) Name(code string) (string, error) {
	name, ok := r.byCode[code]
	if !ok {
		return "", fmt.Errorf("%w: code %q", domain.ErrUnknownLanguage, code)
	}
	return name, nil
}

// Entries: копия в порядке объявления, для селектов
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
