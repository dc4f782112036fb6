package intel

// curatedTimeline is the recency label of the pinned set.
const curatedTimeline = "LIVE - Feb 2026"

func pin(s Sector, subject, players, impact, source, url, lat, lng string) Record {
	return Record{
		Sector:      s.Label(),
		Subject:     subject,
		KeyPlayers:  players,
		Timeline:    curatedTimeline,
		Impact:      impact,
		SourceLabel: source,
		URL:         url,
		Latitude:    lat,
		Longitude:   lng,
		Category:    s.Category(),
		IsCurated:   true,
		IsScraped:   true,
		Origin:      OriginCurated,
	}
}

// curated is hand-authored and always leads the feed in this order.
var curated = []Record{
	pin(SectorConflict,
		"US-Iran Military Standoff: Armada Deployed, Talks Continue Under Threat",
		"United States, Iran, US Navy",
		"US carrier groups positioned near Iran as Trump threatens military action; indirect talks ongoing but Iran views any confrontation as existential — escalation risk HIGH",
		"Modern Diplomacy / GIS Reports",
		"https://moderndiplomacy.eu/2026/02/24/no-win-situation-for-trump-why-the-us-cannot-achieve-military-victory/",
		"32.4279", "53.6880"),
	pin(SectorConflict,
		"Ukraine War: 4th Anniversary — Putin's Aims Unchanged, Peace Dim",
		"Russia, Ukraine, NATO, USA",
		"Four years since Russia's full-scale invasion; Ukrainian forces counterattack in Dnipropetrovsk; Western experts see no change in Putin's objectives and dimming peace prospects",
		"Russia Matters / Reddit CredibleDefense",
		"https://www.russiamatters.org/analysis/four-years-russias-invasion-western-experts-see-putins-aims-largely-unchanged-prospects",
		"48.3794", "31.1656"),
	pin(SectorHealth,
		"South Sudan: Conflict Deepens Hunger Crisis, Aid Access Blocked",
		"UN OCHA, WFP, South Sudan government, armed factions",
		"1.2 million+ people at crisis-level food insecurity; armed conflict blocking humanitarian corridors — UN warns of imminent famine if aid cannot reach affected populations",
		"UN News",
		"https://news.un.org/en/story/2026/02/1167005",
		"6.8770", "31.3070"),
	pin(SectorEconomy,
		"Trump 15% Global Tariff: Supreme Court Clips IEEPA, Trade War Escalates",
		"USA, EU, UK, WTO, US Supreme Court",
		"SCOTUS struck down IEEPA tariffs 6-3; Trump immediately responded with 15% blanket tariff under Section 122 — effective Feb 24. Wall Street drops; EU and UK scramble to respond. Could reshape global trade architecture",
		"NYT / Reuters / CFR",
		"https://www.cfr.org/articles/the-supreme-court-clipped-trumps-tariff-powers-and-opened-new-trade-battle-fronts",
		"38.8951", "-77.0364"),
	pin(SectorTechnology,
		`US "Totally Rejects" Global AI Governance at India Summit`,
		"USA White House, India AI Summit, EU, UN",
		"White House tech adviser Kratsios declares US opposes risk-focused multilateral AI regulation at Global AI Summit in New Delhi — fracturing international consensus on AI governance just as UN pushes its own framework",
		"France 24",
		"https://www.france24.com/en/technology/20260220-us-totally-rejects-global-ai-governance-white-house-adviser-tells-india-summit",
		"28.6139", "77.2090"),
	pin(SectorTechnology,
		"UN Launches AI Human Rights Governance Framework",
		"UN Human Rights Council, Volker Türk, OpenAI, member states",
		"UN High Commissioner Türk calls for inclusivity, accountability and global AI standards at 61st HRC session in Geneva — directly countering US unilateralist stance. Sam Altman also urges urgent global AI regulation",
		"UN News / Dig.Watch",
		"https://news.un.org/en/story/2026/02/1167000",
		"46.2044", "6.1432"),
	pin(SectorEnvironment,
		"SCOTUS Takes Up Exxon/Suncor Climate Accountability Case",
		"US Supreme Court, ExxonMobil, Suncor Energy, Boulder CO, fossil fuel sector",
		"Supreme Court agrees to hear oil companies' bid to dismiss Boulder's climate damage lawsuit — ruling could shield fossil fuel industry from wave of city/state climate litigation nationwide and globally",
		"The Guardian / LA Times",
		"https://www.theguardian.com/us-news/2026/feb/23/supreme-court-suncor-exxonmobil-case",
		"37.0902", "-95.7129"),
	pin(SectorHealth,
		"WFP: Somalia Food Aid Could Halt Within Weeks Due to Funding Collapse",
		"WFP, Somalia government, USAID (dismantled), donor nations",
		"World Food Programme warns food aid to Somalia may fully stop within weeks — directly linked to USAID dismantling and declining donor contributions. 1.2M+ face acute food insecurity",
		"CNBC Africa / WFP",
		"https://www.cnbcafrica.com/2026/food-aid-in-somalia-could-halt-within-weeks-due-to-funding-shortages-wfp-warns/",
		"2.0469", "45.3418"),
	pin(SectorHealth,
		"USAID Dismantled: Lancet Study Projects Mass Death Toll After 1 Year",
		"USA (Trump admin), USAID, Lancet, WHO, Global South nations",
		"One year since Trump dismantled USAID — Lancet study projects devastating mortality projections across HIV, TB, malaria, and maternal health programs in Sub-Saharan Africa and South/Southeast Asia",
		"CNN / The Lancet",
		"https://www.cnn.com/2026/02/04/world/lancet-usaid-global-aid-cuts-intl",
		"0.0", "20.0"),
	pin(SectorConflict,
		`Mexico: CJNG Boss "El Mencho" Killed, Cartel Retaliatory Violence Erupts Across Jalisco`,
		"Mexico (Sheinbaum govt), CJNG Cartel, US Intelligence",
		`US-assisted military raid killed CJNG leader Nemesio Oseguera ("El Mencho") Feb 22 — immediate retaliation: burning buses, highway blockades, gunfights across Jalisco & Michoacán; 10,000 troops deployed; Mexico at a crossroads on cartel power vs. state authority`,
		"NYT / Modern Diplomacy",
		"https://www.nytimes.com/2026/02/22/world/americas/jalisco-new-generation-cartel-leader-killed.html",
		"20.6597", "-103.3496"),
	pin(SectorConflict,
		"US-Mexico Sovereignty Standoff: Sheinbaum Rejects Intervention, Counters Tariffs, Faces Musk",
		"USA (Trump/Musk), Mexico (Sheinbaum), USMCA",
		"Mexico firmly rejects US military intervention despite Trump threats; Sheinbaum imposes 50% retaliatory tariffs on 1,000+ US goods; considers legal action after Elon Musk criticism — textbook realist sovereignty vs. liberal interventionist tension under USMCA framework",
		"Al Jazeera / CRS Report",
		"https://www.aljazeera.com/news/2026/2/24/mexicos-claudia-sheinbaum-considers-legal-action-after-elon-musk-criticism",
		"19.4326", "-99.1332"),
	pin(SectorConflict,
		`Philippines: Duterte Faces ICC Pre-Trial — "War on Drugs" Killings Prosecuted Internationally`,
		"ICC, Rodrigo Duterte, Philippines, Human Rights Watch",
		"ICC pre-trial hearings opened Feb 23: prosecutors allege Duterte personally directed extrajudicial drug war killings (est. 6,000–30,000 deaths 2016–2022); landmark case for international criminal accountability in SE Asia — precedent for state-sanctioned violence trials",
		"The Star / Foreign Policy / ISEAS",
		"https://foreignpolicy.com/2026/02/24/duterte-icc-court-hearing-war-drugs/",
		"14.5995", "120.9842"),
	pin(SectorConflict,
		"ASEAN at 50: Treaty of Amity Under Strain as US Unilateralism and China Pressure Mount",
		"ASEAN, USA, China, RSIS Singapore",
		"ASEAN's foundational Treaty of Amity & Cooperation marks 50 years amid unprecedented pressure: US tariff unilateralism disrupts regional trade frameworks, China asserts SCS claims, and major-power rivalries test ASEAN's non-alignment doctrine — regional multilateralism at inflection point",
		"CNA / RSIS",
		"https://www.channelnewsasia.com/asia/asean-treaty-amity-cooperation-southeast-asia-mark-50-years-5949361",
		"13.7563", "100.5018"),
	pin(SectorHealth,
		"Rohingya Crisis Metastasizes: Refugee Camps Breeding Transnational Militant Networks Across SE Asia",
		"Rohingya refugees, Bangladesh, Malaysia, Thailand, Indonesia, ARSA militants",
		"Bangladesh Rohingya refugee crisis (1M+ displaced) spawning transnational criminal-militant ecosystem: arms trafficking, people smuggling, radicalization networks spreading into Malaysia, Thailand, Indonesia — The Diplomat warns of regional security breakdown if unaddressed",
		"The Diplomat",
		"https://thediplomat.com/2026/02/southeast-asia-and-the-rohingya-militant-threat/",
		"21.9162", "95.9560"),
	pin(SectorConflict,
		"Myanmar Civil War: Junta Losing Ground, Civilian Displacement Floods Thailand & Malaysia Borders",
		"Myanmar Military (SAC), PDFs, NUG, Thailand, Malaysia",
		"Ongoing junta vs. resistance People's Defence Forces conflict; military losing territory in Shan, Kayah & Rakhine states; massive civilian displacement spilling into Thailand and India; Malaysia arrested 7,043 undocumented migrants Jan–Feb 2026 alone — regional humanitarian and security crisis accelerating",
		"NST Malaysia / ISEAS",
		"https://www.nst.com.my/newssummary/1382735",
		"19.7633", "96.0785"),
}

// Curated returns a fresh copy of the pinned set. Callers may mutate the
// result without affecting later cycles.
func Curated() []Record {
	out := make([]Record, len(curated))
	copy(out, curated)
	return out
}
