package export

import "github.com/miy4x/shigezane-admin/internal/client/models"

// Column maps a record's wire field to a header label.
type Column struct {
	Key   string
	Label string
}

var kindColumns = map[models.Kind][]Column{
	models.KindRental: {
		{"unit_id", "ID"},
		{"building_name", "建物名"},
		{"building_address", "住所"},
		{"unit_number", "部屋番号"},
		{"floor", "階数"},
		{"room_layout", "間取り"},
		{"area", "面積"},
		{"monthly_rent", "家賃"},
		{"management_fee", "管理費"},
		{"deposit", "敷金"},
		{"key_money", "礼金"},
		{"parking_available", "駐車場"},
		{"parking_fee", "駐車場料金"},
		{"main_direction", "主要採光面"},
		{"pets_allowed", "ペット可"},
		{"musical_instruments_allowed", "楽器可"},
		{"status", "ステータス"},
		{"unit_features", "設備"},
		{"remarks", "備考"},
	},
	models.KindWeekly: {
		{"weekly_unit_id", "ID"},
		{"building_name", "建物名"},
		{"building_address", "住所"},
		{"unit_number", "部屋番号"},
		{"floor", "階数"},
		{"room_layout", "間取り"},
		{"area", "面積"},
		{"daily_rate", "日額"},
		{"weekly_rate", "週額"},
		{"monthly_rate", "月額"},
		{"management_fee", "管理費"},
		{"parking_available", "駐車場"},
		{"parking_fee", "駐車場料金"},
		{"pets_allowed", "ペット可"},
		{"musical_instruments_allowed", "楽器可"},
		{"status", "ステータス"},
		{"unit_features", "設備"},
		{"remarks", "備考"},
	},
	models.KindLand: {
		{"land_id", "ID"},
		{"address", "住所"},
		{"sale_price", "販売価格"},
		{"land_area", "土地面積"},
		{"zoning", "用途地域"},
		{"building_coverage", "建ぺい率"},
		{"floor_area_ratio", "容積率"},
		{"road_contact", "接道"},
		{"land_category", "地目"},
		{"status", "ステータス"},
		{"land_details", "詳細"},
		{"remarks", "備考"},
	},
	models.KindHouse: {
		{"house_id", "ID"},
		{"property_type", "物件タイプ"},
		{"address", "住所"},
		{"sale_price", "販売価格"},
		{"land_area", "土地面積"},
		{"building_area", "建物面積"},
		{"room_layout", "間取り"},
		{"building_age", "築年数"},
		{"structure", "構造"},
		{"floor", "階数"},
		{"status", "ステータス"},
		{"house_details", "詳細"},
		{"remarks", "備考"},
	},
	models.KindParking: {
		{"parking_space_id", "ID"},
		{"parking_lot_name", "駐車場名"},
		{"parking_lot_address", "住所"},
		{"space_number", "区画番号"},
		{"monthly_fee", "月額料金"},
		{"vehicle_size", "車両サイズ"},
		{"status", "ステータス"},
		{"remarks", "備考"},
	},
	models.KindBuilding: {
		{"building_id", "ID"},
		{"name", "建物名"},
		{"address", "住所"},
		{"building_age", "築年数"},
		{"structure", "構造"},
		{"total_floors", "総階数"},
	},
	models.KindParkingLot: {
		{"parking_lot_id", "ID"},
		{"name", "駐車場名"},
		{"address", "住所"},
		{"total_spaces", "総区画数"},
		{"lot_features", "設備"},
	},
}

// summaryKeys picks the columns that fit a terminal table.
var summaryKeys = map[models.Kind][]string{
	models.KindRental:     {"unit_id", "building_name", "unit_number", "room_layout", "monthly_rent", "status"},
	models.KindWeekly:     {"weekly_unit_id", "building_name", "unit_number", "room_layout", "daily_rate", "monthly_rate", "status"},
	models.KindLand:       {"land_id", "address", "sale_price", "land_area", "zoning", "status"},
	models.KindHouse:      {"house_id", "property_type", "address", "sale_price", "room_layout", "status"},
	models.KindParking:    {"parking_space_id", "parking_lot_name", "space_number", "monthly_fee", "vehicle_size", "status"},
	models.KindBuilding:   {"building_id", "name", "address", "structure", "total_floors"},
	models.KindParkingLot: {"parking_lot_id", "name", "address", "total_spaces"},
}

// Columns returns every exported column of kind, in file order.
func Columns(kind models.Kind) []Column {
	return append([]Column(nil), kindColumns[kind]...)
}

// SummaryColumns is the short column set for list views.
func SummaryColumns(kind models.Kind) []Column {
	byKey := map[string]Column{}
	for _, c := range kindColumns[kind] {
		byKey[c.Key] = c
	}
	out := make([]Column, 0, len(summaryKeys[kind]))
	for _, k := range summaryKeys[kind] {
		out = append(out, byKey[k])
	}
	return out
}
