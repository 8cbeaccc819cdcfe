package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var divider = strings.Repeat("=", 50)

// WriteOverview prints the overview as aligned text tables.
func WriteOverview(w io.Writer, o *Overview) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "=== E-COMMERCE DATA ANALYSIS ===")
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Tables in the database:")
	for _, t := range o.Tables {
		fmt.Fprintf(tw, " - %s\t%s records\n", t.Table, humanize.Comma(t.Rows))
	}
	section(tw)

	fmt.Fprintln(tw, "1. Number of Customers per City:")
	fmt.Fprintln(tw, "city\tcustomer_count")
	for _, c := range o.CustomersByCity {
		fmt.Fprintf(tw, "%s\t%d\n", c.City, c.CustomerCount)
	}
	section(tw)

	fmt.Fprintln(tw, "2. Profit Margins for Products:")
	fmt.Fprintln(tw, "product_name\tcategory\tprice\tcost\tprofit\tprofit_percentage")
	for _, m := range o.ProductMargins {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			m.ProductName, m.Category,
			m.Price.StringFixed(2), m.Cost.StringFixed(2),
			m.Profit.StringFixed(2), m.ProfitPercent.StringFixed(2))
	}
	section(tw)

	fmt.Fprintf(tw, "3. %d Most Recent Orders with Customer Names:\n", len(o.RecentOrders))
	fmt.Fprintln(tw, "order_id\torder_date\tcustomer_name\tstatus")
	for _, r := range o.RecentOrders {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.OrderID, r.OrderDate, r.CustomerName, r.Status)
	}
	section(tw)

	fmt.Fprintln(tw, "4. Total Revenue:")
	fmt.Fprintf(tw, "total_revenue\t%s\n", Money(o.TotalRevenue))
	section(tw)

	return tw.Flush()
}

// WriteSummary prints the headline numbers behind the rendered charts.
func WriteSummary(w io.Writer, v *Visuals) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, divider)
	fmt.Fprintln(tw, "QUICK SUMMARY")
	fmt.Fprintln(tw, divider)
	fmt.Fprintf(tw, "Total Revenue:\t%s\n", Money(v.TotalRevenue))
	fmt.Fprintf(tw, "Total Customers:\t%s\n", humanize.Comma(v.TotalCustomers))
	fmt.Fprintf(tw, "Top Product:\t%s\n", orNone(v.TopProduct))
	fmt.Fprintf(tw, "Top Category:\t%s\n", orNone(v.TopCategory))
	for _, f := range v.Files {
		fmt.Fprintf(tw, "Chart:\t%s\n", f)
	}
	return tw.Flush()
}

// Money formats d as "$1,234.56".
func Money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return "$" + humanize.FormatFloat("#,###.##", f)
}

func section(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, divider)
	fmt.Fprintln(w)
}

func orNone(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
