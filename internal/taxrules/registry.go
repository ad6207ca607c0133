package taxrules

import (
	"fmt"
	"sort"
	"sync"
)

// Registry хранит наборы правил по финансовым годам.
// Безопасен для конкурентного чтения после заполнения.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]*Rules
}

// NewRegistry создает реестр, уже содержащий встроенные правила
func NewRegistry() *Registry {
	reg := &Registry{rules: make(map[string]*Rules)}
	reg.Add(Default())
	return reg
}

// Add добавляет или заменяет правила для их финансового года
func (r *Registry) Add(rules *Rules) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rules.FiscalYear] = rules
}

// LoadFile загружает файл правил и добавляет его в реестр
func (r *Registry) LoadFile(path string) (*Rules, error) {
	rules, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	r.Add(rules)
	return rules, nil
}

// Lookup возвращает правила для финансового года
func (r *Registry) Lookup(fiscalYear string) (*Rules, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rules, ok := r.rules[fiscalYear]
	if !ok {
		return nil, fmt.Errorf("taxrules: no rules for fiscal year %q", fiscalYear)
	}
	return rules, nil
}

// FiscalYears возвращает отсортированный список известных годов
func (r *Registry) FiscalYears() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	years := make([]string, 0, len(r.rules))
	for fy := range r.rules {
		years = append(years, fy)
	}
	sort.Strings(years)
	return years
}
