package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// CasePrefix prefixes every case number, e.g. CASE0001.
const CasePrefix = "CASE"

// CaseCounter holds the last sequence number handed out for a prefix.
// There is one row per prefix and it is only ever advanced with an atomic increment.
type CaseCounter struct {
	gorm.Model
	Prefix string `json:"prefix" gorm:"size:16;uniqueIndex"`
	Number int    `json:"number"`
	Code   string `json:"code" gorm:"size:32"`
}

// PatientCase binds an identity tuple to its case number.
type PatientCase struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PatientName string    `json:"patientName" gorm:"column:patient_name;size:191;not null;uniqueIndex:idx_patient_case_identity"`
	Age         string    `json:"age" gorm:"column:age;size:16;not null;default:'';uniqueIndex:idx_patient_case_identity"`
	BloodGroup  string    `json:"bloodGroup" gorm:"column:blood_group;size:8;not null;default:'';uniqueIndex:idx_patient_case_identity"`
	CaseNumber  string    `json:"caseNumber" gorm:"column:case_number;size:32;not null;uniqueIndex"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IdentityTuple is the weak patient identity shared by prescriptions and reports.
type IdentityTuple struct {
	PatientName string
	Age         string
	BloodGroup  string
}

// Normalize collapses whitespace in the name, trims the age and upper-cases the blood group.
func (i IdentityTuple) Normalize() IdentityTuple {
	return IdentityTuple{
		PatientName: strings.Join(strings.Fields(i.PatientName), " "),
		Age:         strings.TrimSpace(i.Age),
		BloodGroup:  strings.ToUpper(strings.TrimSpace(i.BloodGroup)),
	}
}

// CaseResolution is the outcome of ResolveCaseNumber.
type CaseResolution struct {
	CaseNumber string `json:"caseNumber"`
	Allocated  bool   `json:"allocated"`
}

// FormatCaseNumber renders a sequence number as CASE####.
func FormatCaseNumber(n int) string {
	return fmt.Sprintf("%s%04d", CasePrefix, n)
}

// ParseCaseNumber extracts the numeric suffix of a case number.
func ParseCaseNumber(code string) (int, bool) {
	if !strings.HasPrefix(code, CasePrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(code, CasePrefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ResolveCaseNumber returns the case number bound to identity, allocating the next one
// when the identity has never been seen. Existing numbers are never changed.
func ResolveCaseNumber(db *gorm.DB, identity IdentityTuple) (CaseResolution, error) {
	identity = identity.Normalize()
	if identity.PatientName == "" {
		return CaseResolution{}, NewValidationError("patientName is required")
	}

	if existing, found, err := findPatientCase(db, identity); err != nil {
		return CaseResolution{}, NewStorageError("failed to look up case number", err)
	} else if found {
		return CaseResolution{CaseNumber: existing.CaseNumber}, nil
	}

	var resolution CaseResolution
	err := db.Transaction(func(tx *gorm.DB) error {
		n, err := nextCaseSequence(tx)
		if err != nil {
			return err
		}
		pc := PatientCase{
			PatientName: identity.PatientName,
			Age:         identity.Age,
			BloodGroup:  identity.BloodGroup,
			CaseNumber:  FormatCaseNumber(n),
		}
		if err := tx.Create(&pc).Error; err != nil {
			return err
		}
		resolution = CaseResolution{CaseNumber: pc.CaseNumber, Allocated: true}
		return nil
	})
	if err == nil {
		return resolution, nil
	}

	// A concurrent writer may have registered the same identity first; its number wins.
	if existing, found, lookupErr := findPatientCase(db, identity); lookupErr == nil && found {
		return CaseResolution{CaseNumber: existing.CaseNumber}, nil
	}
	return CaseResolution{}, NewStorageError("failed to allocate case number", err)
}

// LookupCaseNumber finds the most recent case registered for name. Age and blood group
// narrow the search only when provided. It never allocates.
func LookupCaseNumber(db *gorm.DB, identity IdentityTuple) (PatientCase, bool, error) {
	identity = identity.Normalize()
	if identity.PatientName == "" {
		return PatientCase{}, false, NewValidationError("patient name is required")
	}

	query := db.Where("patient_name = ?", identity.PatientName)
	if identity.Age != "" {
		query = query.Where("age = ?", identity.Age)
	}
	if identity.BloodGroup != "" {
		query = query.Where("blood_group = ?", identity.BloodGroup)
	}

	var pc PatientCase
	err := query.Order("id DESC").Limit(1).Find(&pc).Error
	if err != nil {
		return PatientCase{}, false, NewStorageError("failed to look up case number", err)
	}
	return pc, pc.ID != 0, nil
}

// LastCaseNumber returns the most recently allocated case number, or CASE0000.
func LastCaseNumber(db *gorm.DB) (string, error) {
	var counter CaseCounter
	err := db.Where("prefix = ?", CasePrefix).Limit(1).Find(&counter).Error
	if err != nil {
		return "", NewStorageError("failed to read case counter", err)
	}
	return FormatCaseNumber(counter.Number), nil
}

func findPatientCase(db *gorm.DB, identity IdentityTuple) (PatientCase, bool, error) {
	var pc PatientCase
	err := db.Where("patient_name = ? AND age = ? AND blood_group = ?",
		identity.PatientName, identity.Age, identity.BloodGroup).
		Limit(1).Find(&pc).Error
	if err != nil {
		return PatientCase{}, false, err
	}
	return pc, pc.ID != 0, nil
}

// nextCaseSequence advances the counter with a single UPDATE so that two allocations can
// never observe the same value. The row stays locked until the surrounding transaction ends.
func nextCaseSequence(tx *gorm.DB) (int, error) {
	affected, err := incrementCaseCounter(tx)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		seedErr := SeedCaseCounter(tx)
		if affected, err = incrementCaseCounter(tx); err != nil {
			return 0, err
		}
		if affected == 0 {
			if seedErr != nil {
				return 0, seedErr
			}
			return 0, errors.New("case counter row is missing")
		}
	}

	var counter CaseCounter
	if err := tx.Where("prefix = ?", CasePrefix).First(&counter).Error; err != nil {
		return 0, err
	}
	if err := tx.Model(&counter).UpdateColumn("code", FormatCaseNumber(counter.Number)).Error; err != nil {
		return 0, err
	}
	return counter.Number, nil
}

func incrementCaseCounter(tx *gorm.DB) (int64, error) {
	res := tx.Model(&CaseCounter{}).
		Where("prefix = ?", CasePrefix).
		UpdateColumn("number", gorm.Expr("number + ?", 1))
	return res.RowsAffected, res.Error
}

// SeedCaseCounter creates the counter row, starting from the numerically highest case
// number already stored so that legacy data never gets its numbers reissued.
func SeedCaseCounter(db *gorm.DB) error {
	var count int64
	if err := db.Model(&CaseCounter{}).Where("prefix = ?", CasePrefix).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	highest, err := highestStoredCaseNumber(db)
	if err != nil {
		return err
	}
	return db.Create(&CaseCounter{
		Prefix: CasePrefix,
		Number: highest,
		Code:   FormatCaseNumber(highest),
	}).Error
}

// highestStoredCaseNumber compares suffixes numerically; CASE10 sorts above CASE9.
func highestStoredCaseNumber(db *gorm.DB) (int, error) {
	var codes []string
	if err := db.Model(&PatientCase{}).Pluck("case_number", &codes).Error; err != nil {
		return 0, err
	}
	var legacy []string
	if err := db.Model(&Prescription{}).Where("case_number <> ''").Distinct().Pluck("case_number", &legacy).Error; err != nil {
		return 0, err
	}

	highest := 0
	for _, code := range append(codes, legacy...) {
		if n, ok := ParseCaseNumber(code); ok && n > highest {
			highest = n
		}
	}
	return highest, nil
}

// BackfillPatientCases registers the identity tuples of stored prescriptions that carry a
// case number but have no PatientCase row yet. The first case number seen for a tuple wins.
func BackfillPatientCases(db *gorm.DB) error {
	var rows []Prescription
	if err := db.Select("patient_name", "age", "blood_group", "case_number").
		Where("case_number <> ''").Order("id ASC").Find(&rows).Error; err != nil {
		return err
	}

	seen := make(map[IdentityTuple]struct{}, len(rows))
	for _, p := range rows {
		identity := IdentityTuple{PatientName: p.PatientName, Age: p.Age, BloodGroup: p.BloodGroup}.Normalize()
		if _, ok := seen[identity]; ok {
			continue
		}
		seen[identity] = struct{}{}

		_, found, err := findPatientCase(db, identity)
		if err != nil {
			return err
		}
		if found {
			continue
		}
		var taken int64
		if err := db.Model(&PatientCase{}).Where("case_number = ?", p.CaseNumber).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			continue
		}
		if err := db.Create(&PatientCase{
			PatientName: identity.PatientName,
			Age:         identity.Age,
			BloodGroup:  identity.BloodGroup,
			CaseNumber:  p.CaseNumber,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}
