package models

import "time"

// Certification tiers. "일반" (general) is the uncertified tier and gets no
// lot number; the certified tiers carry traceability lot numbers.
const (
	CertTypeGeneral       = "일반"
	CertTypePesticideFree = "무농약"
	CertTypeOrganic       = "유기농"
)

type ProducerGroup struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	CertType  string `gorm:"size:20;not null;default:'일반'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Certified reports whether stock from this group is lot-number eligible.
func (g *ProducerGroup) Certified() bool {
	return g.CertType != CertTypeGeneral
}
