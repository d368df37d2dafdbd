package models

import (
	"reflect"
	"testing"
)

func TestPermissionList(t *testing.T) {
	tests := []struct {
		stored string
		want   []string
	}{
		{"", nil},
		{"   ", nil},
		{"STOCK_MANAGE", []string{"STOCK_MANAGE"}},
		{"STOCK_MANAGE,MILLING_MANAGE", []string{"STOCK_MANAGE", "MILLING_MANAGE"}},
		{" STOCK_MANAGE , MILLING_MANAGE ,", []string{"STOCK_MANAGE", "MILLING_MANAGE"}},
	}

	for _, tt := range tests {
		u := User{Permissions: tt.stored}
		if got := u.PermissionList(); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("PermissionList(%q) = %v, want %v", tt.stored, got, tt.want)
		}
	}
}

func TestProducerGroupCertified(t *testing.T) {
	general := ProducerGroup{CertType: CertTypeGeneral}
	if general.Certified() {
		t.Error("일반 group must not be certified")
	}
	for _, ct := range []string{CertTypePesticideFree, CertTypeOrganic} {
		g := ProducerGroup{CertType: ct}
		if !g.Certified() {
			t.Errorf("%s group must be certified", ct)
		}
	}
}
