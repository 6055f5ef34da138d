package ledger

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func fixtureReceipt(id, number, transporter, date string) Receipt {
	return Receipt{
		ID:              id,
		Date:            date,
		ReceiptNumber:   number,
		TransporterName: transporter,
		AdvanceAmount:   1000000,
		Quantity:        5,
		UnitPrice:       400000,
		TotalRent:       2000000,
		Expenses: []Expense{
			{ID: id + "-e1", Name: "Driver", Amount: 300000},
		},
		TotalExpenses:   300000,
		RemainingAmount: 700000,
		BalanceAmount:   1000000,
		Status:          StatusPending,
	}
}

var _ = Describe("Store", func() {
	var (
		db    *mockDB
		store *Store
	)

	BeforeEach(func() {
		db = newMockDB()
		var err error
		store, err = NewStore(db)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("NewStore", func() {
		When("the database holds a collection", func() {
			BeforeEach(func() {
				db.receipts = []Receipt{
					fixtureReceipt("a", "KT-001", "ACME Logistics", "2024-05-01"),
					fixtureReceipt("b", "KT-002", "acme traders", "2024-05-02"),
				}
				var err error
				store, err = NewStore(db)
				Expect(err).NotTo(HaveOccurred())
			})

			It("should restore the collection in insertion order", func() {
				receipts := store.Receipts()
				Expect(receipts).To(HaveLen(2))
				Expect(receipts[0].ID).To(Equal("a"))
				Expect(receipts[1].ID).To(Equal("b"))
			})
		})

		When("no prior data exists", func() {
			It("should start empty without error", func() {
				Expect(store.Receipts()).To(BeEmpty())
			})
		})

		When("loading fails", func() {
			It("should propagate the error", func() {
				db.loadErr = errors.New("corrupt data")
				_, err := NewStore(db)
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Append", func() {
		var (
			receipt Receipt
			err     error
		)

		BeforeEach(func() {
			receipt = fixtureReceipt("a", "KT-001", "ACME Logistics", "2024-05-01")
		})

		JustBeforeEach(func() {
			err = store.Append(receipt)
		})

		When("the write succeeds", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should make the receipt findable by ID", func() {
				found, findErr := store.FindByID("a")
				Expect(findErr).NotTo(HaveOccurred())
				Expect(found).To(Equal(receipt))
			})

			It("should persist before returning", func() {
				Expect(db.receipts).To(HaveLen(1))
			})

			It("should not share expense storage with the caller's input", func() {
				receipt.Expenses[0].Amount = 1

				found, findErr := store.FindByID("a")
				Expect(findErr).NotTo(HaveOccurred())
				Expect(found.Expenses[0].Amount).To(Equal(int64(300000)))
			})
		})

		When("the write fails", func() {
			BeforeEach(func() {
				db.saveErr = errors.New("quota exceeded")
			})

			It("should report a persistence error", func() {
				Expect(err).To(MatchError(ErrPersistence))
			})

			It("should roll back the in-memory append", func() {
				Expect(store.Receipts()).To(BeEmpty())
			})
		})
	})

	Describe("FindByID", func() {
		BeforeEach(func() {
			Expect(store.Append(fixtureReceipt("a", "KT-001", "ACME Logistics", "2024-05-01"))).To(Succeed())
		})

		When("the receipt exists", func() {
			It("should return it", func() {
				found, err := store.FindByID("a")
				Expect(err).NotTo(HaveOccurred())
				Expect(found.ReceiptNumber).To(Equal("KT-001"))
			})
		})

		When("the receipt does not exist", func() {
			It("should return ErrReceiptNotFound", func() {
				_, err := store.FindByID("missing")
				Expect(err).To(MatchError(ErrReceiptNotFound))
			})
		})

		When("a caller mutates a returned receipt's expenses", func() {
			It("should not affect the stored collection", func() {
				found, err := store.FindByID("a")
				Expect(err).NotTo(HaveOccurred())
				found.Expenses[0].Amount = 999999

				refetched, err := store.FindByID("a")
				Expect(err).NotTo(HaveOccurred())
				Expect(refetched.Expenses[0].Amount).To(Equal(int64(300000)))
			})
		})
	})

	Describe("UpdateStatus", func() {
		var original Receipt

		BeforeEach(func() {
			original = fixtureReceipt("a", "KT-001", "ACME Logistics", "2024-05-01")
			Expect(store.Append(original)).To(Succeed())
		})

		When("marking a pending receipt paid", func() {
			var err error

			JustBeforeEach(func() {
				err = store.UpdateStatus("a", StatusPaid)
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should change only the status field", func() {
				updated, findErr := store.FindByID("a")
				Expect(findErr).NotTo(HaveOccurred())
				Expect(updated.Status).To(Equal(StatusPaid))

				updated.Status = original.Status
				Expect(updated).To(Equal(original))
			})

			It("should persist the change", func() {
				Expect(db.receipts[0].Status).To(Equal(StatusPaid))
			})
		})

		When("marking an already paid receipt paid again", func() {
			BeforeEach(func() {
				Expect(store.UpdateStatus("a", StatusPaid)).To(Succeed())
				db.saves = 0
			})

			It("should be a state-wise no-op", func() {
				Expect(store.UpdateStatus("a", StatusPaid)).To(Succeed())
				Expect(db.saves).To(Equal(0))

				updated, err := store.FindByID("a")
				Expect(err).NotTo(HaveOccurred())
				Expect(updated.Status).To(Equal(StatusPaid))
			})
		})

		When("reverting a paid receipt to pending", func() {
			BeforeEach(func() {
				Expect(store.UpdateStatus("a", StatusPaid)).To(Succeed())
			})

			It("should reject the transition", func() {
				Expect(store.UpdateStatus("a", StatusPending)).To(MatchError(ErrStatusTransition))
			})
		})

		When("the receipt does not exist", func() {
			It("should return ErrReceiptNotFound", func() {
				Expect(store.UpdateStatus("missing", StatusPaid)).To(MatchError(ErrReceiptNotFound))
			})
		})

		When("the write fails", func() {
			BeforeEach(func() {
				db.saveErr = errors.New("quota exceeded")
			})

			It("should report a persistence error and keep the old status", func() {
				Expect(store.UpdateStatus("a", StatusPaid)).To(MatchError(ErrPersistence))

				unchanged, err := store.FindByID("a")
				Expect(err).NotTo(HaveOccurred())
				Expect(unchanged.Status).To(Equal(StatusPending))
			})
		})
	})

	Describe("Search", func() {
		BeforeEach(func() {
			Expect(store.Append(fixtureReceipt("a", "KT-001", "ACME Logistics", "2024-05-01"))).To(Succeed())
			Expect(store.Append(fixtureReceipt("b", "KT-002", "acme traders", "2024-06-15"))).To(Succeed())
			Expect(store.Append(fixtureReceipt("c", "KT-003", "Other Co", "2024-05-01"))).To(Succeed())
		})

		When("searching by transporter name", func() {
			It("should match case-insensitive substrings", func() {
				results := store.Search("acme", "")
				Expect(results).To(HaveLen(2))
				Expect(results[0].ID).To(Equal("a"))
				Expect(results[1].ID).To(Equal("b"))
			})

			It("should exclude non-matching transporters", func() {
				for _, r := range store.Search("acme", "") {
					Expect(r.TransporterName).NotTo(Equal("Other Co"))
				}
			})
		})

		When("searching by date only", func() {
			It("should match date substrings against all transporters", func() {
				results := store.Search("", "2024-05-01")
				Expect(results).To(HaveLen(2))
				Expect(results[0].ID).To(Equal("a"))
				Expect(results[1].ID).To(Equal("c"))
			})
		})

		When("both queries are empty", func() {
			It("should match everything in insertion order", func() {
				results := store.Search("", "")
				Expect(results).To(HaveLen(3))
				Expect(results[0].ID).To(Equal("a"))
				Expect(results[2].ID).To(Equal("c"))
			})
		})

		When("nothing matches", func() {
			It("should return an empty, non-nil slice", func() {
				Expect(store.Search("zzz", "")).To(BeEmpty())
			})
		})

		When("a caller mutates a result's expenses", func() {
			It("should not affect the stored collection", func() {
				results := store.Search("acme", "")
				results[0].Expenses[0].Name = "Tampered"

				Expect(store.Receipts()[0].Expenses[0].Name).To(Equal("Driver"))
			})
		})
	})

	Describe("Summarize", func() {
		When("the collection holds one paid and one pending receipt", func() {
			BeforeEach(func() {
				paid := fixtureReceipt("a", "KT-001", "ACME Logistics", "2024-05-01")
				paid.AdvanceAmount = 1000000
				paid.TotalExpenses = 300000
				paid.RemainingAmount = 700000
				paid.Status = StatusPaid

				pending := fixtureReceipt("b", "KT-002", "acme traders", "2024-05-02")
				pending.TotalRent = 2000000
				pending.AdvanceAmount = 500000
				pending.BalanceAmount = 1500000

				Expect(store.Append(paid)).To(Succeed())
				Expect(store.Append(pending)).To(Succeed())
			})

			It("should total received from paid remaining amounts", func() {
				Expect(store.Summarize().TotalReceived).To(Equal(int64(700000)))
			})

			It("should total pending from pending balance amounts", func() {
				Expect(store.Summarize().TotalPending).To(Equal(int64(1500000)))
			})
		})

		When("the collection is empty", func() {
			It("should return zero totals", func() {
				Expect(store.Summarize()).To(Equal(Summary{}))
			})
		})
	})

	Describe("NextReceiptNumber", func() {
		When("the store is empty", func() {
			It("should return the seed code", func() {
				Expect(store.NextReceiptNumber()).To(Equal("KT-001"))
			})
		})

		When("receipts exist", func() {
			BeforeEach(func() {
				Expect(store.Append(fixtureReceipt("a", "KT-041", "ACME Logistics", "2024-05-01"))).To(Succeed())
			})

			It("should increment the tail receipt's number", func() {
				Expect(store.NextReceiptNumber()).To(Equal("KT-042"))
			})
		})
	})
})
