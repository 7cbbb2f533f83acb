package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Tier - класс обслуживания автобуса (код тарифа x1, x1.5, x2, x4).
// Неизвестные коды хранятся как TierOther и отображаются как есть.
type Tier struct {
	kind TierKind
	raw  string
}

type TierKind int

const (
	TierUnset TierKind = iota
	TierNormal
	TierSemiLuxury
	TierLuxury
	TierExpress
	TierOther
)

var tierCodes = map[string]TierKind{
	"x1":   TierNormal,
	"x1.5": TierSemiLuxury,
	"x2":   TierLuxury,
	"x4":   TierExpress,
}

var tierLabels = map[TierKind]string{
	TierNormal:     "Normal",
	TierSemiLuxury: "Semi-Luxury",
	TierLuxury:     "Luxury",
	TierExpress:    "Express",
}

// ParseTier - регистронезависимый разбор кода; пустая строка -> TierUnset
func ParseTier(code string) Tier {
	code = strings.TrimSpace(code)
	if code == "" {
		return Tier{}
	}
	if kind, ok := tierCodes[strings.ToLower(code)]; ok {
		return Tier{kind: kind, raw: code}
	}
	return Tier{kind: TierOther, raw: code}
}

func (t Tier) Kind() TierKind { return t.kind }
func (t Tier) IsSet() bool    { return t.kind != TierUnset }
func (t Tier) Code() string   { return t.raw }

// Label - отображаемое имя; для TierOther возвращается исходный код
func (t Tier) Label() string {
	if label, ok := tierLabels[t.kind]; ok {
		return label
	}
	return t.raw
}

func (t Tier) MarshalText() ([]byte, error) { return []byte(t.raw), nil }

func (t *Tier) UnmarshalText(b []byte) error {
	*t = ParseTier(string(b))
	return nil
}

func (t Tier) Value() (driver.Value, error) { return nullableText(t.raw) }

func (t *Tier) Scan(src interface{}) error {
	s, err := scanNullableText(src)
	if err != nil {
		return fmt.Errorf("scan tier: %w", err)
	}
	*t = ParseTier(s)
	return nil
}

// Seating - заполненность автобуса
type Seating struct {
	kind SeatingKind
	raw  string
}

type SeatingKind int

const (
	SeatingUnset SeatingKind = iota
	SeatingAvailable
	SeatingAlmostFull
	SeatingFull
	SeatingLoaded
	SeatingOther
)

var seatingValues = map[string]SeatingKind{
	"available":   SeatingAvailable,
	"almost full": SeatingAlmostFull,
	"full":        SeatingFull,
	"loaded":      SeatingLoaded,
}

var seatingLabels = map[SeatingKind]string{
	SeatingAvailable:  "Available",
	SeatingAlmostFull: "Almost full",
	SeatingFull:       "Full",
	SeatingLoaded:     "Loaded",
}

func ParseSeating(value string) Seating {
	value = strings.TrimSpace(value)
	if value == "" {
		return Seating{}
	}
	if kind, ok := seatingValues[strings.ToLower(value)]; ok {
		return Seating{kind: kind, raw: value}
	}
	return Seating{kind: SeatingOther, raw: value}
}

func (s Seating) Kind() SeatingKind { return s.kind }
func (s Seating) IsSet() bool       { return s.kind != SeatingUnset }
func (s Seating) String() string    { return s.raw }

// Label - каноническое написание для известных значений, иначе как есть
func (s Seating) Label() string {
	if label, ok := seatingLabels[s.kind]; ok {
		return label
	}
	return s.raw
}

// Level - 1..4 для известных значений, 0 для остальных (иконка по умолчанию)
func (s Seating) Level() int {
	switch s.kind {
	case SeatingAvailable:
		return 1
	case SeatingAlmostFull:
		return 2
	case SeatingFull:
		return 3
	case SeatingLoaded:
		return 4
	default:
		return 0
	}
}

func (s Seating) MarshalText() ([]byte, error) { return []byte(s.raw), nil }

func (s *Seating) UnmarshalText(b []byte) error {
	*s = ParseSeating(string(b))
	return nil
}

func (s Seating) Value() (driver.Value, error) { return nullableText(s.raw) }

func (s *Seating) Scan(src interface{}) error {
	v, err := scanNullableText(src)
	if err != nil {
		return fmt.Errorf("scan seating: %w", err)
	}
	*s = ParseSeating(v)
	return nil
}

// Provider - перевозчик (тип автобуса): государственный SLTB или частный
type Provider struct {
	kind ProviderKind
	raw  string
}

type ProviderKind int

const (
	ProviderUnset ProviderKind = iota
	ProviderSLTB
	ProviderPrivate
	ProviderOther
)

func ParseProvider(value string) Provider {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "":
		return Provider{}
	case "sltb":
		return Provider{kind: ProviderSLTB, raw: value}
	case "private":
		return Provider{kind: ProviderPrivate, raw: value}
	default:
		return Provider{kind: ProviderOther, raw: value}
	}
}

func (p Provider) Kind() ProviderKind { return p.kind }
func (p Provider) IsSet() bool        { return p.kind != ProviderUnset }
func (p Provider) String() string     { return p.raw }

// Label - значение в верхнем регистре, как в карточке автобуса
func (p Provider) Label() string {
	return strings.ToUpper(p.raw)
}

func (p Provider) MarshalText() ([]byte, error) { return []byte(p.raw), nil }

func (p *Provider) UnmarshalText(b []byte) error {
	*p = ParseProvider(string(b))
	return nil
}

func (p Provider) Value() (driver.Value, error) { return nullableText(p.raw) }

func (p *Provider) Scan(src interface{}) error {
	v, err := scanNullableText(src)
	if err != nil {
		return fmt.Errorf("scan provider: %w", err)
	}
	*p = ParseProvider(v)
	return nil
}

func nullableText(s string) (driver.Value, error) {
	if s == "" {
		return nil, nil
	}
	return s, nil
}

func scanNullableText(src interface{}) (string, error) {
	switch v := src.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("unsupported type %T", src)
	}
}
