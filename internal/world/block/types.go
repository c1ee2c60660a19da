package block

import (
	"fmt"
	"strings"
)

// Type - закрытое перечисление типов блоков
type Type uint8

// Константы типов блоков
const (
	Air   Type = iota // 0 - отсутствие блока, не рисуется и не сталкивается
	Dirt              // 1
	Stone             // 2
	Grass             // 3
	Sand              // 4
	Wood              // 5 - ствол дерева
	Leaves            // 6 - листва

	typeCount
)

var typeNames = [typeCount]string{
	Air:    "air",
	Dirt:   "dirt",
	Stone:  "stone",
	Grass:  "grass",
	Sand:   "sand",
	Wood:   "wood",
	Leaves: "leaves",
}

// Types возвращает все типы, кроме воздуха
func Types() []Type {
	out := make([]Type, 0, typeCount-1)
	for t := Dirt; t < typeCount; t++ {
		out = append(out, t)
	}
	return out
}

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("type(%d)", uint8(t))
	}
	return typeNames[t]
}

// Valid проверяет, входит ли значение в перечисление
func (t Type) Valid() bool {
	return t < typeCount
}

// IsTransparent - соседняя грань видна сквозь этот тип
func (t Type) IsTransparent() bool {
	return t == Air || !t.Valid()
}

// IsSolid - тип участвует в столкновениях
func (t Type) IsSolid() bool {
	return !t.IsTransparent()
}

// ParseType разбирает имя типа без учёта регистра
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return Air, fmt.Errorf("неизвестный тип блока %q", name)
}

// MarshalText позволяет использовать Type как ключ в YAML
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText разбирает тип из YAML
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
