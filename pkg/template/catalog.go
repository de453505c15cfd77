package template

import "github.com/cropfresh/cropfresh-service-notification/internal/domain"

// Translator-owned message catalog. English is the required baseline; any
// missing variant falls back to it at render time.
var catalog = map[string]map[domain.Language]string{
	// ORDER_MATCHED
	"ORDER_MATCHED.push_title": {
		domain.English: "🎉 New Buyer Found!",
		domain.Kannada: "🎉 ಖರೀದಿದಾರ ಸಿಕ್ಕಿದ್ದಾರೆ!",
		domain.Hindi:   "🎉 नया खरीदार मिल गया!",
		domain.Tamil:   "🎉 புதிய வாங்குபவர் கிடைத்தார்!",
		domain.Telugu:  "🎉 కొత్త కొనుగోలుదారు దొరికారు!",
	},
	"ORDER_MATCHED.push_body": {
		domain.English: "A buyer wants {{quantity}}kg of your {{crop}} at ₹{{price}}/kg. Total ₹{{total}}. Tap to confirm.",
		domain.Kannada: "ಖರೀದಿದಾರರು ನಿಮ್ಮ {{crop}} {{quantity}}ಕೆಜಿ ₹{{price}}/ಕೆಜಿ ದರದಲ್ಲಿ ಬಯಸುತ್ತಾರೆ. ಒಟ್ಟು ₹{{total}}. ದೃಢೀಕರಿಸಲು ಒತ್ತಿ.",
		domain.Hindi:   "खरीदार आपकी {{crop}} {{quantity}}किलो ₹{{price}}/किलो पर चाहता है। कुल ₹{{total}}। पुष्टि के लिए टैप करें।",
	},
	"ORDER_MATCHED.sms": {
		domain.English: "CropFresh: New buyer for your {{crop}}! {{quantity}}kg at ₹{{price}}/kg, total ₹{{total}}. Open the app to confirm.",
		domain.Kannada: "CropFresh: ನಿಮ್ಮ {{crop}} ಗೆ ಹೊಸ ಖರೀದಿದಾರ! {{quantity}}ಕೆಜಿ, ₹{{price}}/ಕೆಜಿ, ಒಟ್ಟು ₹{{total}}. ದೃಢೀಕರಿಸಲು ಆ್ಯಪ್ ತೆರೆಯಿರಿ.",
		domain.Hindi:   "CropFresh: आपकी {{crop}} के लिए नया खरीदार! {{quantity}}किलो, ₹{{price}}/किलो, कुल ₹{{total}}। पुष्टि के लिए ऐप खोलें।",
		domain.Tamil:   "CropFresh: உங்கள் {{crop}}க்கு புதிய வாங்குபவர்! {{quantity}}கிலோ, ₹{{price}}/கிலோ, மொத்தம் ₹{{total}}.",
		domain.Telugu:  "CropFresh: మీ {{crop}}కి కొత్త కొనుగోలుదారు! {{quantity}}కిలో, ₹{{price}}/కిలో, మొత్తం ₹{{total}}.",
	},

	// PAYMENT_RECEIVED
	"PAYMENT_RECEIVED.push_title": {
		domain.English: "💰 Payment Received",
		domain.Kannada: "💰 ಹಣ ಬಂದಿದೆ",
		domain.Hindi:   "💰 भुगतान प्राप्त हुआ",
		domain.Tamil:   "💰 பணம் பெறப்பட்டது",
		domain.Telugu:  "💰 చెల్లింపు అందింది",
	},
	"PAYMENT_RECEIVED.push_body": {
		domain.English: "₹{{amount}} for order {{orderId}} has been credited to your account.",
		domain.Kannada: "ಆರ್ಡರ್ {{orderId}} ಗಾಗಿ ₹{{amount}} ನಿಮ್ಮ ಖಾತೆಗೆ ಜಮಾ ಆಗಿದೆ.",
		domain.Hindi:   "ऑर्डर {{orderId}} के लिए ₹{{amount}} आपके खाते में जमा हो गए हैं।",
	},
	"PAYMENT_RECEIVED.sms": {
		domain.English: "CropFresh: ₹{{amount}} received for order {{orderId}}. It is on the way to your bank account.",
		domain.Kannada: "CropFresh: ಆರ್ಡರ್ {{orderId}} ಗಾಗಿ ₹{{amount}} ಸ್ವೀಕರಿಸಲಾಗಿದೆ. ಹಣ ನಿಮ್ಮ ಬ್ಯಾಂಕ್ ಖಾತೆಗೆ ಬರುತ್ತಿದೆ.",
		domain.Hindi:   "CropFresh: ऑर्डर {{orderId}} के लिए ₹{{amount}} प्राप्त हुए। राशि आपके बैंक खाते में आ रही है।",
	},

	// MATCH_EXPIRING
	"MATCH_EXPIRING.push_title": {
		domain.English: "⏰ Offer Expiring Soon",
		domain.Kannada: "⏰ ಆಫರ್ ಬೇಗ ಮುಗಿಯುತ್ತದೆ",
		domain.Hindi:   "⏰ ऑफ़र जल्द समाप्त हो रहा है",
	},
	"MATCH_EXPIRING.push_body": {
		domain.English: "Your buyer match for {{crop}} expires in {{hours}} hours. Confirm now to keep it.",
		domain.Kannada: "ನಿಮ್ಮ {{crop}} ಖರೀದಿದಾರ ಹೊಂದಾಣಿಕೆ {{hours}} ಗಂಟೆಗಳಲ್ಲಿ ಮುಗಿಯುತ್ತದೆ. ಈಗಲೇ ದೃಢೀಕರಿಸಿ.",
		domain.Hindi:   "आपकी {{crop}} की खरीदार मैच {{hours}} घंटे में समाप्त हो जाएगी। अभी पुष्टि करें।",
	},
	"MATCH_EXPIRING.sms": {
		domain.English: "CropFresh: your buyer match for {{crop}} expires in {{hours}} hours. Open the app to confirm before it lapses.",
		domain.Kannada: "CropFresh: ನಿಮ್ಮ {{crop}} ಹೊಂದಾಣಿಕೆ {{hours}} ಗಂಟೆಗಳಲ್ಲಿ ಮುಗಿಯುತ್ತದೆ. ಈಗಲೇ ಆ್ಯಪ್ ತೆರೆದು ದೃಢೀಕರಿಸಿ.",
	},

	// ORDER_CANCELLED
	"ORDER_CANCELLED.push_title": {
		domain.English: "❌ Order Cancelled",
		domain.Kannada: "❌ ಆರ್ಡರ್ ರದ್ದಾಗಿದೆ",
		domain.Hindi:   "❌ ऑर्डर रद्द हुआ",
	},
	"ORDER_CANCELLED.push_body": {
		domain.English: "Order {{orderId}} for your {{crop}} was cancelled. Your produce is back on the marketplace.",
		domain.Kannada: "ನಿಮ್ಮ {{crop}} ಆರ್ಡರ್ {{orderId}} ರದ್ದಾಗಿದೆ. ನಿಮ್ಮ ಬೆಳೆ ಮತ್ತೆ ಮಾರುಕಟ್ಟೆಯಲ್ಲಿದೆ.",
	},
	"ORDER_CANCELLED.sms": {
		domain.English: "CropFresh: order {{orderId}} was cancelled. Your {{crop}} listing is live again; we are finding you a new buyer.",
		domain.Kannada: "CropFresh: ಆರ್ಡರ್ {{orderId}} ರದ್ದಾಗಿದೆ. ನಿಮ್ಮ {{crop}} ಮತ್ತೆ ಮಾರಾಟಕ್ಕೆ ಇದೆ; ಹೊಸ ಖರೀದಿದಾರನನ್ನು ಹುಡುಕುತ್ತಿದ್ದೇವೆ.",
	},

	// QUALITY_DISPUTE
	"QUALITY_DISPUTE.push_title": {
		domain.English: "⚠️ Quality Dispute Raised",
		domain.Kannada: "⚠️ ಗುಣಮಟ್ಟದ ದೂರು ದಾಖಲಾಗಿದೆ",
	},
	"QUALITY_DISPUTE.push_body": {
		domain.English: "The buyer raised a quality dispute on order {{orderId}}. Please respond within 24 hours.",
		domain.Kannada: "ಆರ್ಡರ್ {{orderId}} ಮೇಲೆ ಖರೀದಿದಾರರು ಗುಣಮಟ್ಟದ ದೂರು ನೀಡಿದ್ದಾರೆ. 24 ಗಂಟೆಯೊಳಗೆ ಪ್ರತಿಕ್ರಿಯಿಸಿ.",
	},
	"QUALITY_DISPUTE.sms": {
		domain.English: "CropFresh: a quality dispute was raised on order {{orderId}}. Respond in the app within 24 hours to protect your payout.",
		domain.Kannada: "CropFresh: ಆರ್ಡರ್ {{orderId}} ಮೇಲೆ ಗುಣಮಟ್ಟದ ದೂರು ಇದೆ. ನಿಮ್ಮ ಹಣ ರಕ್ಷಿಸಲು 24 ಗಂಟೆಯೊಳಗೆ ಆ್ಯಪ್‌ನಲ್ಲಿ ಪ್ರತಿಕ್ರಿಯಿಸಿ.",
	},

	// HAULER_EN_ROUTE
	"HAULER_EN_ROUTE.push_title": {
		domain.English: "🚚 Pickup On The Way",
		domain.Kannada: "🚚 ಸಾಗಣೆ ವಾಹನ ಬರುತ್ತಿದೆ",
	},
	"HAULER_EN_ROUTE.push_body": {
		domain.English: "Your hauler is on the way, arriving around {{eta}}. Keep your produce ready.",
		domain.Kannada: "ಸಾಗಣೆ ವಾಹನ ಬರುತ್ತಿದೆ, ಸುಮಾರು {{eta}} ಕ್ಕೆ ತಲುಪುತ್ತದೆ. ಬೆಳೆ ಸಿದ್ಧವಾಗಿಡಿ.",
	},
	"HAULER_EN_ROUTE.sms": {
		domain.English: "CropFresh: your hauler arrives around {{eta}}. Please have your produce weighed and ready.",
	},

	// PICKUP_COMPLETE
	"PICKUP_COMPLETE.push_title": {
		domain.English: "✅ Pickup Complete",
		domain.Kannada: "✅ ಪಿಕಪ್ ಪೂರ್ಣ",
	},
	"PICKUP_COMPLETE.push_body": {
		domain.English: "{{quantity}}kg of {{crop}} picked up. You can track the delivery in the app.",
		domain.Kannada: "{{crop}} {{quantity}}ಕೆಜಿ ಪಿಕಪ್ ಆಗಿದೆ. ಆ್ಯಪ್‌ನಲ್ಲಿ ಸಾಗಣೆ ವೀಕ್ಷಿಸಬಹುದು.",
	},
	"PICKUP_COMPLETE.sms": {
		domain.English: "CropFresh: {{quantity}}kg of {{crop}} picked up successfully. Track delivery in the app.",
	},

	// ORDER_DELIVERED
	"ORDER_DELIVERED.push_title": {
		domain.English: "📦 Order Delivered",
		domain.Kannada: "📦 ಆರ್ಡರ್ ತಲುಪಿದೆ",
	},
	"ORDER_DELIVERED.push_body": {
		domain.English: "Order {{orderId}} was delivered to the buyer. Payment will follow shortly.",
		domain.Kannada: "ಆರ್ಡರ್ {{orderId}} ಖರೀದಿದಾರರಿಗೆ ತಲುಪಿದೆ. ಹಣ ಶೀಘ್ರದಲ್ಲೇ ಬರುತ್ತದೆ.",
	},
	"ORDER_DELIVERED.sms": {
		domain.English: "CropFresh: order {{orderId}} delivered to the buyer. Payment will be released shortly.",
	},

	// DROP_POINT_ASSIGNED
	"DROP_POINT_ASSIGNED.push_title": {
		domain.English: "📍 Drop Point Assigned",
		domain.Kannada: "📍 ಡ್ರಾಪ್ ಪಾಯಿಂಟ್ ನಿಗದಿಯಾಗಿದೆ",
	},
	"DROP_POINT_ASSIGNED.push_body": {
		domain.English: "Bring your produce to {{dropPoint}} by {{deadline}}.",
		domain.Kannada: "ನಿಮ್ಮ ಬೆಳೆಯನ್ನು {{deadline}} ಒಳಗೆ {{dropPoint}} ಗೆ ತನ್ನಿ.",
	},
	"DROP_POINT_ASSIGNED.sms": {
		domain.English: "CropFresh: drop point for your order is {{dropPoint}}. Please deliver by {{deadline}}.",
	},

	// EDUCATIONAL_TIP
	"EDUCATIONAL_TIP.push_title": {
		domain.English: "🌱 Tip Of The Day",
		domain.Kannada: "🌱 ಇಂದಿನ ಸಲಹೆ",
	},
	"EDUCATIONAL_TIP.push_body": {
		domain.English: "{{tip}}",
		domain.Kannada: "{{tip}}",
	},
	"EDUCATIONAL_TIP.sms": {
		domain.English: "CropFresh tip: {{tip}}",
	},
}
