package forms

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/miy4x/shigezane-admin/internal/client/models"
)

type fieldText struct {
	label string
	msg   string
}

var fieldTexts = map[string]fieldText{
	"address":           {"住所", "住所を入力してください"},
	"building_age":      {"築年数", "築年数は0以上で入力してください"},
	"structure":         {"構造", "構造を選択してください"},
	"total_floors":      {"総階数", "総階数は1以上で入力してください"},
	"building_id":       {"建物", "建物を選択してください"},
	"unit_number":       {"部屋番号", "部屋番号を入力してください"},
	"floor":             {"階数", "階数は1以上で入力してください"},
	"room_layout":       {"間取り", "間取りを選択してください"},
	"area":              {"面積", "面積は1以上で入力してください"},
	"monthly_rent":      {"家賃", "家賃は0以上で入力してください"},
	"management_fee":    {"管理費", "管理費は0以上で入力してください"},
	"deposit":           {"敷金", "敷金は0以上で入力してください"},
	"key_money":         {"礼金", "礼金は0以上で入力してください"},
	"parking_fee":       {"駐車場料金", "駐車場料金は0以上で入力してください"},
	"status":            {"ステータス", "ステータスを選択してください"},
	"daily_rate":        {"日額", "日額は0以上で入力してください"},
	"weekly_rate":       {"週額", "週額は0以上で入力してください"},
	"monthly_rate":      {"月額", "月額は0以上で入力してください"},
	"sale_price":        {"販売価格", "販売価格は0以上で入力してください"},
	"land_area":         {"土地面積", "土地面積は1以上で入力してください"},
	"zoning":            {"用途地域", "用途地域を入力してください"},
	"building_coverage": {"建ぺい率", "建ぺい率は0以上で入力してください"},
	"floor_area_ratio":  {"容積率", "容積率は0以上で入力してください"},
	"road_contact":      {"接道", "接道を入力してください"},
	"land_category":     {"地目", "地目を入力してください"},
	"property_type":     {"物件タイプ", "物件タイプを選択してください"},
	"building_area":     {"建物面積", "建物面積は1以上で入力してください"},
	"total_spaces":      {"総区画数", "総区画数は1以上で入力してください"},
	"parking_lot_id":    {"駐車場", "駐車場を選択してください"},
	"space_number":      {"区画番号", "区画番号を入力してください"},
	"monthly_fee":       {"月額料金", "月額料金は0以上で入力してください"},
	"vehicle_size":      {"車両サイズ", "車両サイズを入力してください"},
}

var kindFieldTexts = map[models.Kind]map[string]fieldText{
	models.KindBuilding: {
		"name": {"建物名", "建物名を入力してください"},
	},
	models.KindParkingLot: {
		"name": {"駐車場名", "駐車場名を入力してください"},
	},
	models.KindHouse: {
		"room_layout": {"間取り", "間取りを入力してください"},
		"structure":   {"構造", "構造を入力してください"},
	},
}

const (
	msgParkingFeeRequired = "駐車場料金を入力してください"
	msgInvalidImageURL    = "画像URLが不正です"
	msgGalleryTooLong     = "画像は最大10枚までです"
)

var imageTexts = map[models.ImageRole]string{
	models.RoleMain:      "サムネイルは必須です",
	models.RoleFloorplan: "間取り図は必須です",
	models.RoleSurvey:    "測量図は必須です",
	models.RoleLayout:    "区画図は必須です",
}

func textFor(kind models.Kind, field string) (fieldText, bool) {
	if t, ok := kindFieldTexts[kind][field]; ok {
		return t, true
	}
	t, ok := fieldTexts[field]
	return t, ok
}

func messageFor(kind models.Kind, fe validator.FieldError) string {
	t, ok := textFor(kind, fe.Field())
	if !ok {
		return fmt.Sprintf("%sの値が不正です", fe.Field())
	}
	if fe.Tag() == "max" {
		return fmt.Sprintf("%sは%s以下で入力してください", t.label, fe.Param())
	}
	return t.msg
}
