package repository

// Set bundles every repository bound to one transaction. Use cases that
// need multi-table writes receive a Set from the TxRunner so all writes
// commit or roll back together.
type Set struct {
	Customers CustomerRepository
	Products  ProductRepository
	Quotes    QuoteRepository
	Invoices  InvoiceRepository
	Payments  PaymentRepository
	Users     UserRepository
}
