package client_test

import (
	"testing"

	"github.com/muhammadheryan/mogadishu-rentals/client"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		raw  string
		want client.Location
	}{
		{raw: "", want: client.Location{}},
		{raw: " , ,", want: client.Location{}},
		{raw: "Hodan", want: client.Location{Display: "Hodan", District: "Hodan"}},
		{raw: "Hodan, Mogadishu, mogadishu", want: client.Location{Display: "Hodan, Mogadishu", District: "Hodan"}},
		{raw: "  Mogadishu ,Mogadishu,  Banadir ", want: client.Location{Display: "Mogadishu, Banadir", District: "Mogadishu"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, client.NormalizeLocation(tt.raw))
		})
	}
}
