package slip

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Validate", func() {
	var (
		pair       Pair
		violations []string
	)

	BeforeEach(func() {
		pair = testPair()
	})

	JustBeforeEach(func() {
		violations = Validate(pair)
	})

	When("the pair is clean", func() {
		It("returns no violations", func() {
			Expect(violations).To(BeEmpty())
		})
	})

	When("the ATM numbers differ", func() {
		BeforeEach(func() {
			pair.Slip2.ATMNumber = "202"
		})

		It("returns exactly one violation for the pair", func() {
			Expect(violations).To(ConsistOf("ATM Number must be the same for both slips."))
		})
	})

	When("a slip has a denomination outside the allowed set", func() {
		BeforeEach(func() {
			pair.Slip1.Denominations[1].Denomination = 50
		})

		It("identifies the slip and the 1-based line position", func() {
			Expect(violations).To(ConsistOf("Slip 1: Denomination 2 must be 500, 200, or 100."))
		})
	})

	When("a slip has a blank END value", func() {
		BeforeEach(func() {
			pair.Slip2.Denominations[2].End = nil
		})

		It("identifies the slip and the 1-based line position", func() {
			Expect(violations).To(ConsistOf("Slip 2: END value for denomination 3 cannot be blank."))
		})
	})

	When("several rules are broken at once", func() {
		BeforeEach(func() {
			pair.Slip2.ATMNumber = "202"
			pair.Slip1.Denominations[0].Denomination = 1000
			pair.Slip2.Denominations[1].End = nil
		})

		It("collects every violation instead of stopping at the first", func() {
			Expect(violations).To(ConsistOf(
				"ATM Number must be the same for both slips.",
				"Slip 1: Denomination 1 must be 500, 200, or 100.",
				"Slip 2: END value for denomination 2 cannot be blank.",
			))
		})
	})

	When("a line is both disallowed and blank", func() {
		BeforeEach(func() {
			pair.Slip1.Denominations[0] = Denomination{Denomination: 50, End: nil}
		})

		It("reports both violations for the same line", func() {
			Expect(violations).To(ConsistOf(
				"Slip 1: Denomination 1 must be 500, 200, or 100.",
				"Slip 1: END value for denomination 1 cannot be blank.",
			))
		})
	})

	It("is deterministic for the same input", func() {
		pair.Slip2.ATMNumber = "202"
		Expect(Validate(pair)).To(Equal(Validate(pair)))
	})
})
