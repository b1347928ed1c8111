package seed

import (
	"fmt"
	"io"
	"text/tabwriter"
)

func (r *IOTReport) Print(w io.Writer) {
	fmt.Fprintln(w, "Seed completed successfully.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Demo data created:")
	fmt.Fprintf(w, "   - User: %s\n", r.User.Email)
	fmt.Fprintf(w, "   - Devices: %d\n", len(r.Devices))
	fmt.Fprintf(w, "   - Readings: %d\n", r.Readings)
	fmt.Fprintf(w, "   - Alerts: %d\n", len(r.Alerts))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use the device tokens to send data through the API:")
	for i, d := range r.Devices {
		fmt.Fprintf(w, "   Device %d: %s\n", i+1, d.DeviceToken)
	}
}

func (r *SmartHomeReport) Print(w io.Writer) {
	fmt.Fprintln(w, "Seed completed successfully.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Demo data created:")
	fmt.Fprintf(w, "   - User: %s\n", r.User.Email)
	fmt.Fprintf(w, "   - Device types inserted: %d\n", r.DeviceTypes)
	fmt.Fprintf(w, "   - Rooms: %d\n", len(r.Rooms))
	fmt.Fprintf(w, "   - Devices: %d\n", len(r.Devices))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Log in with the demo account to try the controls.")
}

func (r *VerifyReport) Print(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLOCATION\tACTIVE\tTOKEN")
	for _, d := range r.Devices {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", d.ID, d.Name, d.Location, d.IsActive, d.DeviceToken)
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TABLE\tROWS")
	for _, c := range r.Counts {
		fmt.Fprintf(tw, "%s\t%d\n", c.Table, c.Rows)
	}
	_ = tw.Flush()
}
