package models

import (
	"database/sql"
	"strconv"
	"strings"
)

// Summary represents a single pkg_summary(5) entry.
//
// Optional fields use database/sql Null types so that an absent field is
// distinguishable from an explicit zero or empty value. SIZE_PKG=0 is valid
// (meta-packages have no payload) and must not collapse into "missing".
// Integer fields are int64 even though negative values never occur, so the
// values can be stored in SQLite, which has no unsigned 64-bit type.
type Summary struct {
	Automatic       sql.NullInt64 // not part of pkg_summary(5)
	BuildDate       string
	Categories      []string
	Comment         string
	Conflicts       []string
	Depends         []string
	Description     []string
	FileCksum       sql.NullString
	FileName        sql.NullString
	FileSize        sql.NullInt64
	Homepage        sql.NullString
	License         sql.NullString
	MachineArch     string
	Opsys           string
	OsVersion       string
	PkgOptions      sql.NullString
	Pkgbase         string // non-standard, name part of PKGNAME
	Pkgname         string // full package name including version
	Pkgpath         string
	PkgtoolsVersion string
	Pkgversion      string // non-standard, version part of PKGNAME
	PrevPkgpath     sql.NullString
	Provides        []string
	Requires        []string
	SizePkg         sql.NullInt64
	Supersedes      []string
}

// ParseEntry applies a single KEY=VALUE pair to the summary. Scalar fields
// are overwritten on every occurrence (last value wins), repeated fields
// append in arrival order without deduplication.
//
// All returned errors are *ParseError and recoverable: the offending field
// is left unset and the rest of the record can still be parsed.
func (s *Summary) ParseEntry(key, value string) error {
	switch key {
	case "BUILD_DATE":
		s.BuildDate = value
	case "CATEGORIES":
		s.Categories = append(s.Categories, value)
	case "COMMENT":
		s.Comment = value
	case "CONFLICTS":
		s.Conflicts = append(s.Conflicts, value)
	case "DEPENDS":
		s.Depends = append(s.Depends, value)
	case "DESCRIPTION":
		s.Description = append(s.Description, value)
	case "FILE_CKSUM":
		s.FileCksum = sql.NullString{String: value, Valid: true}
	case "FILE_NAME":
		s.FileName = sql.NullString{String: value, Valid: true}
	case "FILE_SIZE":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return &ParseError{Type: ErrInvalidInteger, Field: key, Value: value, Err: err}
		}
		s.FileSize = sql.NullInt64{Int64: n, Valid: true}
	case "HOMEPAGE":
		s.Homepage = sql.NullString{String: value, Valid: true}
	case "LICENSE":
		s.License = sql.NullString{String: value, Valid: true}
	case "MACHINE_ARCH":
		s.MachineArch = value
	case "OPSYS":
		s.Opsys = value
	case "OS_VERSION":
		s.OsVersion = value
	case "PKG_OPTIONS":
		s.PkgOptions = sql.NullString{String: value, Valid: true}
	case "PKGNAME":
		// Split PKGNAME into constituent parts on the last '-'.
		idx := strings.LastIndex(value, "-")
		if idx < 0 {
			return &ParseError{Type: ErrMalformedPackageName, Field: key, Value: value}
		}
		s.Pkgname = value
		s.Pkgbase = value[:idx]
		s.Pkgversion = value[idx+1:]
	case "PKGPATH":
		s.Pkgpath = value
	case "PKGTOOLS_VERSION":
		s.PkgtoolsVersion = value
	case "PREV_PKGPATH":
		s.PrevPkgpath = sql.NullString{String: value, Valid: true}
	case "PROVIDES":
		s.Provides = append(s.Provides, value)
	case "REQUIRES":
		s.Requires = append(s.Requires, value)
	case "SIZE_PKG":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return &ParseError{Type: ErrInvalidInteger, Field: key, Value: value, Err: err}
		}
		s.SizePkg = sql.NullInt64{Int64: n, Valid: true}
	case "SUPERSEDES":
		s.Supersedes = append(s.Supersedes, value)
	default:
		return &ParseError{Type: ErrUnknownField, Field: key, Value: value}
	}
	return nil
}

// SetAutomatic marks this package as pulled in as an automatic dependency.
// Not a member of pkg_summary(5); unset reads as 0 via the Automatic field.
func (s *Summary) SetAutomatic() {
	s.Automatic = sql.NullInt64{Int64: 1, Valid: true}
}

// Validate ensures all required fields (as per pkg_summary(5)) are set.
// It reports the first missing field as a *ParseError of type ErrMissingField.
func (s *Summary) Validate() error {
	if s.BuildDate == "" {
		return missingField("BUILD_DATE")
	}
	if len(s.Categories) == 0 {
		return missingField("CATEGORIES")
	}
	if s.Comment == "" {
		return missingField("COMMENT")
	}
	if len(s.Description) == 0 {
		return missingField("DESCRIPTION")
	}
	if s.MachineArch == "" {
		return missingField("MACHINE_ARCH")
	}
	if s.Opsys == "" {
		return missingField("OPSYS")
	}
	if s.OsVersion == "" {
		return missingField("OS_VERSION")
	}
	if s.Pkgname == "" {
		return missingField("PKGNAME")
	}
	if s.Pkgpath == "" {
		return missingField("PKGPATH")
	}
	if s.PkgtoolsVersion == "" {
		return missingField("PKGTOOLS_VERSION")
	}
	// SIZE_PKG is required but a size of 0 is valid (meta-packages), so only
	// presence is checked.
	if !s.SizePkg.Valid {
		return missingField("SIZE_PKG")
	}
	return nil
}

func missingField(field string) error {
	return &ParseError{Type: ErrMissingField, Field: field}
}
