package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/miy4x/shigezane-admin/internal/client/export"
	"github.com/miy4x/shigezane-admin/internal/client/models"
)

type fieldType int

const (
	typeText fieldType = iota
	typeInt
	typeFloat
	typeBool
	typeChoice
	typeList
	typeFee
	typeRef
)

// field describes one prompt of a record form. key is the wire name.
type field struct {
	key     string
	label   string
	typ     fieldType
	choices []string
	ref     models.Kind
}

func statusChoices(k models.Kind) []string {
	var out []string
	for _, s := range models.Statuses(k) {
		out = append(out, string(s))
	}
	return out
}

var (
	structureChoices    = []string{string(models.StructureWood), string(models.StructureSteel), string(models.StructureRC), string(models.StructureSRC)}
	propertyTypeChoices = []string{string(models.PropertyTypeDetached), string(models.PropertyTypeUsedCondo)}
)

func unitFields(k models.Kind) []field {
	out := []field{
		{key: "building_id", label: "建物", typ: typeRef, ref: models.KindBuilding},
		{key: "unit_number", label: "部屋番号"},
		{key: "floor", label: "階数", typ: typeInt},
		{key: "room_layout", label: "間取り"},
		{key: "area", label: "面積", typ: typeFloat},
	}
	if k == models.KindWeekly {
		out = append(out,
			field{key: "daily_rate", label: "日額", typ: typeInt},
			field{key: "weekly_rate", label: "週額", typ: typeInt},
			field{key: "monthly_rate", label: "月額", typ: typeInt},
		)
	} else {
		out = append(out, field{key: "monthly_rent", label: "家賃", typ: typeInt})
	}
	out = append(out, field{key: "management_fee", label: "管理費", typ: typeInt})
	if k == models.KindRental {
		out = append(out,
			field{key: "deposit", label: "敷金", typ: typeInt},
			field{key: "key_money", label: "礼金", typ: typeInt},
		)
	}
	return append(out,
		field{key: "parking_available", label: "駐車場", typ: typeBool},
		field{key: "parking_fee", label: "駐車場料金", typ: typeFee},
		field{key: "main_direction", label: "主要採光面"},
		field{key: "pets_allowed", label: "ペット可", typ: typeBool},
		field{key: "musical_instruments_allowed", label: "楽器可", typ: typeBool},
		field{key: "status", label: "ステータス", typ: typeChoice, choices: statusChoices(k)},
		field{key: "unit_features", label: "設備", typ: typeList},
		field{key: "remarks", label: "備考"},
	)
}

var kindFields = map[models.Kind][]field{
	models.KindRental: unitFields(models.KindRental),
	models.KindWeekly: unitFields(models.KindWeekly),
	models.KindLand: {
		{key: "address", label: "住所"},
		{key: "sale_price", label: "販売価格", typ: typeInt},
		{key: "land_area", label: "土地面積", typ: typeFloat},
		{key: "zoning", label: "用途地域"},
		{key: "building_coverage", label: "建ぺい率", typ: typeFloat},
		{key: "floor_area_ratio", label: "容積率", typ: typeFloat},
		{key: "road_contact", label: "接道"},
		{key: "land_category", label: "地目"},
		{key: "status", label: "ステータス", typ: typeChoice, choices: statusChoices(models.KindLand)},
		{key: "remarks", label: "備考"},
	},
	models.KindHouse: {
		{key: "property_type", label: "物件タイプ", typ: typeChoice, choices: propertyTypeChoices},
		{key: "address", label: "住所"},
		{key: "sale_price", label: "販売価格", typ: typeInt},
		{key: "land_area", label: "土地面積", typ: typeFloat},
		{key: "building_area", label: "建物面積", typ: typeFloat},
		{key: "room_layout", label: "間取り"},
		{key: "building_age", label: "築年数", typ: typeInt},
		{key: "structure", label: "構造"},
		{key: "floor", label: "階数", typ: typeInt},
		{key: "status", label: "ステータス", typ: typeChoice, choices: statusChoices(models.KindHouse)},
		{key: "remarks", label: "備考"},
	},
	models.KindParking: {
		{key: "parking_lot_id", label: "駐車場", typ: typeRef, ref: models.KindParkingLot},
		{key: "space_number", label: "区画番号"},
		{key: "monthly_fee", label: "月額料金", typ: typeInt},
		{key: "vehicle_size", label: "車両サイズ"},
		{key: "status", label: "ステータス", typ: typeChoice, choices: statusChoices(models.KindParking)},
		{key: "remarks", label: "備考"},
	},
	models.KindBuilding: {
		{key: "name", label: "建物名"},
		{key: "address", label: "住所"},
		{key: "building_age", label: "築年数", typ: typeInt},
		{key: "structure", label: "構造", typ: typeChoice, choices: structureChoices},
		{key: "total_floors", label: "総階数", typ: typeInt},
	},
	models.KindParkingLot: {
		{key: "name", label: "駐車場名"},
		{key: "address", label: "住所"},
		{key: "total_spaces", label: "総区画数", typ: typeInt},
	},
}

// clearInput empties an optional value.
const clearInput = "-"

var errInvalidNumber = errors.New("数値を入力してください")

func (f field) parse(s string) (any, error) {
	switch f.typ {
	case typeInt, typeRef:
		n, err := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
		if err != nil {
			return nil, errInvalidNumber
		}
		return n, nil
	case typeFee:
		if s == clearInput {
			return nil, nil
		}
		n, err := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
		if err != nil {
			return nil, errInvalidNumber
		}
		return n, nil
	case typeFloat:
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errInvalidNumber
		}
		return x, nil
	case typeBool:
		switch strings.ToLower(s) {
		case "y", "yes", "true", "1", "あり":
			return true, nil
		case "n", "no", "false", "0", "なし":
			return false, nil
		}
		return nil, errors.New("y か n を入力してください")
	case typeChoice:
		if i, err := strconv.Atoi(s); err == nil && i >= 1 && i <= len(f.choices) {
			return f.choices[i-1], nil
		}
		for _, c := range f.choices {
			if strings.EqualFold(c, s) {
				return c, nil
			}
		}
		return nil, fmt.Errorf("次から選択してください: %s", strings.Join(f.choices, ", "))
	case typeList:
		if s == clearInput {
			return nil, nil
		}
		var out []any
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	}
	if s == clearInput {
		return "", nil
	}
	return s, nil
}

// prompter asks for record fields on a line-oriented terminal.
type prompter struct {
	reader *bufio.Reader
	out    io.Writer
	// options returns a hint listing the records a reference field may
	// point at. It may be nil.
	options func(kind models.Kind) string
}

// fill prompts every field of kind, or only the keys in only when it is
// non-nil, and stores parsed answers in values. The parking fee is only
// asked for while parking is available.
func (p *prompter) fill(kind models.Kind, values map[string]any, only map[string]bool) error {
	for _, f := range kindFields[kind] {
		if only != nil && !only[f.key] {
			continue
		}
		if f.typ == typeFee && values["parking_available"] != true {
			continue
		}
		if err := p.ask(f, values); err != nil {
			return err
		}
	}
	return nil
}

func (p *prompter) ask(f field, values map[string]any) error {
	label := f.label
	switch f.typ {
	case typeChoice:
		label += " (" + strings.Join(f.choices, "/") + ")"
	case typeBool:
		label += " (y/n)"
	case typeList:
		label += " (カンマ区切り)"
	}
	if f.typ == typeRef && p.options != nil {
		if hint := p.options(f.ref); hint != "" {
			fmt.Fprintln(p.out, hint)
		}
	}

	for {
		s, changed, err := promptValue(p.reader, p.out, label, display(values[f.key]))
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
		v, err := f.parse(s)
		if err != nil {
			fmt.Fprintln(p.out, red(err.Error()))
			continue
		}
		values[f.key] = v
		return nil
	}
}

func display(v any) string {
	s, err := export.Cell(v)
	if err != nil {
		return ""
	}
	return s
}

// toValues flattens an input struct into its wire map.
func toValues(in any) (map[string]any, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	out := map[string]any{}
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// fromValues decodes a wire map back into an input struct.
func fromValues(values map[string]any, out any) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
