package quoteform

// Field ids of the built-in window replacement form.
const (
	FieldZipcode       = "zipcode"
	FieldProjectType   = "project_type"
	FieldWindowCount   = "window_count"
	FieldWindowStyle   = "window_style"
	FieldFrameMaterial = "frame_material"
	FieldTimeline      = "timeline"
	FieldHomeowner     = "homeowner"
	FieldFirstName     = "first_name"
	FieldLastName      = "last_name"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldConsent       = "consent"
)

// WindowReplacement returns the eight-step window replacement quote form.
func WindowReplacement() *Definition {
	def, err := NewDefinition("window-replacement", windowSteps(), ConfirmationText{
		Heading:  "Thank You!",
		Received: "We've received your request for zip code: {postal_code}",
		FollowUp: "Our team will connect you with local window replacement contractors in your area shortly.",
	})
	if err != nil {
		panic("quoteform: built-in definition invalid: " + err.Error())
	}
	return def
}

func windowSteps() []Step {
	return []Step{
		{
			Title: "Where is your project located?",
			Fields: []FieldDescriptor{
				{ID: FieldZipcode, Label: "Zip code", Kind: KindText, Required: true, Format: FormatPostalCode},
			},
		},
		{
			Title: "What type of project is this?",
			Fields: []FieldDescriptor{
				{ID: FieldProjectType, Label: "Project type", Kind: KindRadio, Required: true, Options: []Option{
					{Value: "replace", Label: "Replace existing windows"},
					{Value: "repair", Label: "Repair existing windows"},
					{Value: "new", Label: "Install new windows"},
				}},
			},
		},
		{
			Title: "How many windows?",
			Fields: []FieldDescriptor{
				{ID: FieldWindowCount, Label: "Number of windows", Kind: KindRadio, Required: true, Options: []Option{
					{Value: "1", Label: "1 window"},
					{Value: "2-5", Label: "2-5 windows"},
					{Value: "6-10", Label: "6-10 windows"},
					{Value: "10-plus", Label: "More than 10"},
				}},
			},
		},
		{
			Title: "What style of window?",
			Fields: []FieldDescriptor{
				{ID: FieldWindowStyle, Label: "Window style", Kind: KindRadio, Required: true, Options: []Option{
					{Value: "double-hung", Label: "Double hung"},
					{Value: "casement", Label: "Casement"},
					{Value: "sliding", Label: "Sliding"},
					{Value: "bay-bow", Label: "Bay or bow"},
					{Value: "picture", Label: "Picture"},
					{Value: "not-sure", Label: "Not sure"},
				}},
			},
		},
		{
			Title: "Preferred frame material?",
			Fields: []FieldDescriptor{
				{ID: FieldFrameMaterial, Label: "Frame material", Kind: KindRadio, Required: true, Options: []Option{
					{Value: "vinyl", Label: "Vinyl"},
					{Value: "wood", Label: "Wood"},
					{Value: "fiberglass", Label: "Fiberglass"},
					{Value: "aluminum", Label: "Aluminum"},
					{Value: "not-sure", Label: "Not sure"},
				}},
			},
		},
		{
			Title: "When do you want to start?",
			Fields: []FieldDescriptor{
				{ID: FieldTimeline, Label: "Timeline", Kind: KindRadio, Required: true, Options: []Option{
					{Value: "immediately", Label: "Immediately"},
					{Value: "1-3-months", Label: "Within 1-3 months"},
					{Value: "3-6-months", Label: "Within 3-6 months"},
					{Value: "flexible", Label: "Flexible"},
				}},
			},
		},
		{
			Title: "Do you own the home?",
			Fields: []FieldDescriptor{
				{ID: FieldHomeowner, Label: "Homeowner", Kind: KindRadio, Required: true, Options: []Option{
					{Value: "yes", Label: "Yes"},
					{Value: "no", Label: "No"},
				}},
			},
		},
		{
			Title: "Where should we send your quotes?",
			Fields: []FieldDescriptor{
				{ID: FieldFirstName, Label: "First name", Kind: KindText, Required: true},
				{ID: FieldLastName, Label: "Last name", Kind: KindText, Required: true},
				{ID: FieldEmail, Label: "Email", Kind: KindText, Required: true, Format: FormatEmail},
				{ID: FieldPhone, Label: "Phone", Kind: KindText, Required: true, Format: FormatPhone},
				{ID: FieldConsent, Label: "I agree to be contacted about my quote", Kind: KindCheckbox, Required: true},
			},
		},
	}
}
