package chat

import "regexp"

const Welcome = "👋 Hi there! Welcome to Elegance Events. How can I help you plan your perfect celebration?"

// QuickMessages: готовые подсказки под полем ввода
var QuickMessages = []string{
	"I want to book a wedding",
	"Birthday party inquiry",
	"Corporate event quote",
	"Get pricing details",
}

var greetingRe = regexp.MustCompile(`^(hi|hello|hey|hola|namaste)`)

// rules. Порядок важен, срабатывает первое совпадение.
// Свадьба стоит раньше общего "book", иначе "I want to book a wedding"
// уйдёт в бронирование. Остальные тематические правила идут после него.
var rules = []Rule{
	{
		Name:     "greeting",
		Match:    greetingRe.MatchString,
		Response: "👋 Hi there! Welcome to Elegance Events. How can I help you plan your perfect celebration today?",
	},
	{
		Name:     "wedding",
		Match:    containsAny("wedding", "marriage", "shaadi"),
		Response: "💝 Wonderful! We specialize in creating magical weddings.\n\n" +
			"✨ Our wedding services include:\n• Complete venue decoration\n• Floral arrangements\n• Stage setup\n" +
			"• Catering coordination\n• Photography & videography\n• Guest management\n\n" +
			"📞 Call us at +91 7016686728 or click 'Book Now' to get started!",
	},
	{
		Name:     "booking",
		Match:    containsAny("book", "booking"),
		Response: "🎉 Great! I'd love to help you book an event. What type of event are you planning?\n\n" +
			"• Wedding Planning\n• Birthday Party\n• Corporate Event\n• Baby Shower\n• Anniversary\n• Theme Party\n\n" +
			"Just let me know!",
	},
	{
		Name:     "birthday",
		Match:    containsAny("birthday", "bday", "party"),
		Response: "🎂 Awesome! We create unforgettable birthday celebrations!\n\n" +
			"🎈 Our birthday packages include:\n• Theme-based decorations\n• Balloon arrangements\n• Cake & dessert table\n" +
			"• Entertainment & games\n• Photography\n• Party favors\n\n" +
			"💰 Packages start from ₹15,000\n📞 Contact: +91 7016686728",
	},
	{
		Name:     "corporate",
		Match:    containsAny("corporate", "office", "company", "conference"),
		Response: "🏢 Perfect! We handle professional corporate events.\n\n" +
			"📊 Services include:\n• Conference planning\n• Product launches\n• Team building events\n" +
			"• AV equipment setup\n• Professional catering\n• Branding & signage\n\n" +
			"📞 Let's discuss your requirements: +91 7016686728",
	},
	{
		Name:     "pricing",
		Match:    containsAny("price", "cost", "budget", "charge", "fee"),
		Response: "💰 Our pricing depends on your specific requirements:\n\n" +
			"💎 Wedding: ₹50,000 - ₹5,00,000+\n🎂 Birthday: ₹15,000 - ₹1,00,000\n" +
			"🏢 Corporate: ₹25,000 - ₹3,00,000\n👶 Baby Shower: ₹20,000 - ₹75,000\n\n" +
			"📞 For exact quote, call: +91 7016686728\n📝 Or click 'Book Now' for detailed pricing!",
	},
	{
		Name:     "services",
		Match:    containsAny("service", "what do you", "what can you"),
		Response: "✨ We offer complete event planning services:\n\n" +
			"🎊 Event Types:\n• Weddings\n• Birthdays\n• Corporate Events\n• Baby Showers\n• Anniversaries\n• Theme Parties\n\n" +
			"🎨 Services:\n• Decoration\n• Catering\n• Photography\n• Entertainment\n• Venue booking\n\n" +
			"📞 Call: +91 7016686728",
	},
	{
		Name:     "contact",
		Match:    containsAny("contact", "phone", "number", "call"),
		Response: "📞 You can reach us at:\n\n" +
			"📱 Phone/WhatsApp: +91 7016686728\n📧 Email: hello@eleganceevents.com\n\n" +
			"⏰ Available: Mon-Sat, 10 AM - 8 PM\n\nFeel free to call us anytime!",
	},
	{
		// "office" сюда не доходит, его раньше забирает corporate
		Name:     "location",
		Match:    containsAny("location", "where", "address", "office"),
		Response: "📍 We serve events across India!\n\n" +
			"🌟 Popular cities:\n• Mumbai\n• Delhi\n• Bangalore\n• Pune\n• Hyderabad\n• And many more!\n\n" +
			"📞 Call +91 7016686728 to check availability in your city.",
	},
	{
		Name:     "availability",
		Match:    containsAny("available", "date", "when", "free"),
		Response: "📅 We'd love to check availability for your event!\n\n" +
			"Please share:\n• Event date\n• Event type\n• Location\n• Guest count\n\n" +
			"📞 Or call us directly: +91 7016686728\n📝 Click 'Book Now' to fill the form!",
	},
	{
		Name:     "packages",
		Match:    containsAny("package", "plan", "offer"),
		Response: "📦 We have customized packages for every budget!\n\n" +
			"✨ Popular Packages:\n\n🥉 Essential: Basic decoration + catering\n" +
			"🥈 Premium: Complete setup + entertainment\n🥇 Luxury: Everything + premium services\n\n" +
			"📞 Call for details: +91 7016686728\n📝 Or click 'Book Now' to explore!",
	},
	{
		Name:     "decoration",
		Match:    containsAny("decoration", "decor", "theme"),
		Response: "🎨 We create stunning decorations!\n\n" +
			"✨ Decoration services:\n• Floral arrangements\n• Balloon installations\n• Stage decoration\n" +
			"• Entrance decor\n• Table settings\n• Lighting setup\n• Theme-based designs\n\n" +
			"📸 See our portfolio on the website!\n📞 Contact: +91 7016686728",
	},
	{
		Name:     "photography",
		Match:    containsAny("photo", "video", "camera"),
		Response: "📸 Professional photography & videography available!\n\n" +
			"📷 Services include:\n• Pre-event photoshoot\n• Event coverage\n• Candid photography\n" +
			"• Drone shots\n• Video editing\n• Photo albums\n\n📞 Book now: +91 7016686728",
	},
	{
		Name:     "catering",
		Match:    containsAny("food", "catering", "menu", "cuisine"),
		Response: "🍽️ Delicious catering services available!\n\n" +
			"👨‍🍳 We offer:\n• Indian cuisine\n• Continental\n• Chinese\n• Desserts & beverages\n" +
			"• Custom menus\n• Live counters\n\n📞 Discuss menu: +91 7016686728",
	},
	{
		Name:     "thanks",
		Match:    containsAny("thank", "thanks"),
		Response: "You're welcome! 😊\n\nIs there anything else I can help you with?\n\n" +
			"📞 Feel free to call: +91 7016686728\n📝 Or click 'Book Now' to start planning!",
	},
	{
		Name:     "help",
		Match:    containsAny("help", "support", "assist"),
		Response: "🤝 I'm here to help!\n\nYou can ask me about:\n• Event booking\n• Pricing & packages\n" +
			"• Services we offer\n• Availability\n• Contact details\n\n" +
			"Or simply tell me what event you're planning! 🎉",
	},
}

var fallback = Rule{
	Name:     "fallback",
	Match:    func(string) bool { return true },
	Response: "I'd love to help you! 😊\n\nYou can ask me about:\n\n" +
		"🎉 Event booking\n💰 Pricing & packages\n📅 Availability\n🎨 Decoration services\n📸 Photography\n🍽️ Catering\n\n" +
		"Or click one of the quick messages below!\n\n📞 Call anytime: +91 7016686728",
}
