package identity

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/workos/workos-go/v6/pkg/workos_errors"
)

// ErrorKind buckets provider errors by how the caller should react.
type ErrorKind int

const (
	KindPermanent ErrorKind = iota
	KindTransient
	KindDomainConflict
	KindAlreadyMember
	KindAlreadyInvited
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindDomainConflict:
		return "domain_conflict"
	case KindAlreadyMember:
		return "already_member"
	case KindAlreadyInvited:
		return "already_invited"
	}
	return "permanent"
}

var (
	alreadyMemberPatterns = []string{
		"already a member",
		"already_member",
		"already belongs to",
		"organization membership already exists",
	}
	alreadyInvitedPatterns = []string{
		"already invited",
		"already been invited",
		"pending invitation",
		"invitation already exists",
		"invite_already_exists",
	}
	transientPatterns = []string{
		"timeout",
		"timed out",
		"connection reset",
		"connection refused",
		"temporarily unavailable",
		"too many requests",
		"rate limit",
	}
)

// Classify maps a provider error onto an ErrorKind. The provider does not
// expose stable error codes for every case, so message patterns are matched
// after the HTTP status.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindPermanent
	}

	msg := strings.ToLower(err.Error())

	// Membership and invitation conflicts come back as 4xx; check them before
	// falling through to status-based handling.
	if containsAny(msg, alreadyMemberPatterns) {
		return KindAlreadyMember
	}
	if containsAny(msg, alreadyInvitedPatterns) {
		return KindAlreadyInvited
	}
	if strings.Contains(msg, "domain") && containsAny(msg, []string{"already", "taken", "in use"}) {
		return KindDomainConflict
	}

	var httpErr workos_errors.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Code == 429 || httpErr.Code >= 500 {
			return KindTransient
		}
		return KindPermanent
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTransient
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTransient
	}
	if containsAny(msg, transientPatterns) {
		return KindTransient
	}
	return KindPermanent
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
