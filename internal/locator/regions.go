package locator

// regions are simplified outlines of the states and territories on a
// 400x360 canvas.
var regions = []Region{
	{ID: "wa", Label: "Western Australia", Path: "M10,90 L150,40 L150,300 L60,320 L10,250 Z", LabelX: 80, LabelY: 190},
	{ID: "nt", Label: "Northern Territory", Path: "M150,40 L230,30 L230,170 L150,170 Z", LabelX: 190, LabelY: 110},
	{ID: "sa", Label: "South Australia", Path: "M150,170 L260,170 L260,290 L210,270 L150,300 Z", LabelX: 205, LabelY: 230},
	{ID: "qld", Label: "Queensland", Path: "M230,30 L300,10 L390,170 L360,200 L260,200 L260,170 L230,170 Z", LabelX: 300, LabelY: 130},
	{ID: "nsw", Label: "New South Wales", Path: "M260,200 L360,200 L350,270 L300,275 L260,260 Z", LabelX: 305, LabelY: 235},
	{ID: "act", Label: "Australian Capital Territory", Path: "M330,258 L340,258 L340,268 L330,268 Z", LabelX: 345, LabelY: 265},
	{ID: "vic", Label: "Victoria", Path: "M260,260 L300,275 L330,290 L270,305 L260,290 Z", LabelX: 285, LabelY: 290},
	{ID: "tas", Label: "Tasmania", Path: "M280,320 L310,320 L305,350 L285,350 Z", LabelX: 295, LabelY: 340},
}
