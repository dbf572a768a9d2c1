package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miy4x/shigezane-admin/internal/client/models"
)

func TestFieldParse(t *testing.T) {
	status := field{typ: typeChoice, choices: statusChoices(models.KindRental)}
	tests := []struct {
		name  string
		f     field
		in    string
		want  any
		isErr bool
	}{
		{"int with separators", field{typ: typeInt}, "1,200,000", int64(1200000), false},
		{"int rejects text", field{typ: typeInt}, "abc", nil, true},
		{"float", field{typ: typeFloat}, "40.5", 40.5, false},
		{"bool yes", field{typ: typeBool}, "Y", true, false},
		{"bool japanese", field{typ: typeBool}, "なし", false, false},
		{"bool rejects", field{typ: typeBool}, "maybe", nil, true},
		{"choice by index", status, "2", "募集中", false},
		{"choice by value", status, "入居中", "入居中", false},
		{"choice rejects other kind", status, "成約済", nil, true},
		{"list", field{typ: typeList}, "エアコン, 宅配BOX,,", []any{"エアコン", "宅配BOX"}, false},
		{"list clear", field{typ: typeList}, "-", nil, false},
		{"fee clear", field{typ: typeFee}, "-", nil, false},
		{"fee", field{typ: typeFee}, "5000", int64(5000), false},
		{"text clear", field{}, "-", "", false},
		{"ref", field{typ: typeRef}, "3", int64(3), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.f.parse(tt.in)
			if tt.isErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrompterFill_ParkingFeeFollowsToggle(t *testing.T) {
	in := models.RentalUnitInput{BuildingID: 1, UnitNumber: "101", Floor: 1, RoomLayout: "1K", Area: 20, Status: models.StatusPreparing}
	values, err := toValues(in)
	require.NoError(t, err)

	var out bytes.Buffer
	p := &prompter{reader: rdr(lines("y", "abc", "8000")), out: &out}
	require.NoError(t, p.fill(models.KindRental, values, map[string]bool{"parking_available": true, "parking_fee": true}))

	var got models.RentalUnitInput
	require.NoError(t, fromValues(values, &got))
	assert.True(t, got.ParkingAvailable)
	require.NotNil(t, got.ParkingFee)
	assert.Equal(t, int64(8000), *got.ParkingFee)
	assert.Equal(t, "101", got.UnitNumber)
	assert.Contains(t, out.String(), "数値を入力してください")
}

func TestPrompterFill_SkipsFeeWithoutParking(t *testing.T) {
	values, err := toValues(models.RentalUnitInput{})
	require.NoError(t, err)

	var out bytes.Buffer
	p := &prompter{reader: rdr(lines("n")), out: &out}
	require.NoError(t, p.fill(models.KindRental, values, map[string]bool{"parking_available": true, "parking_fee": true}))
	assert.Equal(t, false, values["parking_available"])
	assert.NotContains(t, out.String(), "駐車場料金")
}

func TestPrompterFill_ShowsReferenceOptions(t *testing.T) {
	values, err := toValues(models.ParkingSpaceInput{})
	require.NoError(t, err)

	var out bytes.Buffer
	var asked []models.Kind
	p := &prompter{
		reader: rdr(lines("4")),
		out:    &out,
		options: func(k models.Kind) string {
			asked = append(asked, k)
			return "4:駅前パーキング"
		},
	}
	require.NoError(t, p.fill(models.KindParking, values, map[string]bool{"parking_lot_id": true}))
	assert.Equal(t, []models.Kind{models.KindParkingLot}, asked)
	assert.Equal(t, int64(4), values["parking_lot_id"])
	assert.Contains(t, out.String(), "4:駅前パーキング")
}

func TestKindFields_CoverEveryKind(t *testing.T) {
	for _, k := range models.AllKinds() {
		assert.NotEmpty(t, kindFields[k], "kind %s", k)
	}
	keys := map[string]bool{}
	for _, f := range kindFields[models.KindWeekly] {
		keys[f.key] = true
	}
	assert.True(t, keys["daily_rate"])
	assert.False(t, keys["monthly_rent"])
	assert.False(t, keys["deposit"])
}
