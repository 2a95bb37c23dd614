package identity_test

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/workos/workos-go/v6/pkg/workos_errors"

	"bizdir.app/directory/internal/identity"
)

var _ = Describe("Classify", func() {
	DescribeTable("maps provider errors to kinds",
		func(err error, want identity.ErrorKind) {
			Expect(identity.Classify(err)).To(Equal(want))
		},
		Entry("nil", nil, identity.KindPermanent),
		Entry("already member", errors.New("User is already a member of this organization"), identity.KindAlreadyMember),
		Entry("already invited", errors.New("An invitation already exists for this email"), identity.KindAlreadyInvited),
		Entry("pending invitation", errors.New("user has a pending invitation"), identity.KindAlreadyInvited),
		Entry("domain taken", errors.New("Domain acme.ca is already in use by another organization"), identity.KindDomainConflict),
		Entry("rate limited status", workos_errors.HTTPError{Code: 429}, identity.KindTransient),
		Entry("server error status", workos_errors.HTTPError{Code: 503}, identity.KindTransient),
		Entry("bad request status", workos_errors.HTTPError{Code: 400}, identity.KindPermanent),
		Entry("deadline", fmt.Errorf("calling provider: %w", context.DeadlineExceeded), identity.KindTransient),
		Entry("connection reset", errors.New("read tcp: connection reset by peer"), identity.KindTransient),
		Entry("unknown", errors.New("invalid organization name"), identity.KindPermanent),
	)

	It("names kinds for metrics labels", func() {
		Expect(identity.KindTransient.String()).To(Equal("transient"))
		Expect(identity.KindDomainConflict.String()).To(Equal("domain_conflict"))
		Expect(identity.KindPermanent.String()).To(Equal("permanent"))
	})
})
