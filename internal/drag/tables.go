package drag

// Standard projectile reference tables, drag coefficient by Mach number.
// Condensed to the knots that matter: dense through the transonic band,
// sparse in the flat regions.

var g1Table = []node{
	{0.00, 0.2629}, {0.05, 0.2558}, {0.10, 0.2487}, {0.15, 0.2413},
	{0.20, 0.2344}, {0.25, 0.2278}, {0.30, 0.2214}, {0.35, 0.2155},
	{0.40, 0.2104}, {0.45, 0.2061}, {0.50, 0.2032}, {0.55, 0.2020},
	{0.60, 0.2034}, {0.65, 0.2082}, {0.70, 0.2165}, {0.725, 0.2230},
	{0.75, 0.2313}, {0.775, 0.2417}, {0.80, 0.2546}, {0.825, 0.2706},
	{0.85, 0.2901}, {0.875, 0.3136}, {0.90, 0.3415}, {0.925, 0.3734},
	{0.95, 0.4084}, {0.975, 0.4448}, {1.00, 0.4805}, {1.025, 0.5136},
	{1.05, 0.5427}, {1.075, 0.5677}, {1.10, 0.5883}, {1.125, 0.6053},
	{1.15, 0.6191}, {1.20, 0.6393}, {1.25, 0.6518}, {1.30, 0.6589},
	{1.35, 0.6621}, {1.40, 0.6625}, {1.45, 0.6607}, {1.50, 0.6573},
	{1.55, 0.6528}, {1.60, 0.6474}, {1.65, 0.6413}, {1.70, 0.6347},
	{1.75, 0.6280}, {1.80, 0.6210}, {1.90, 0.6072}, {2.00, 0.5934},
	{2.10, 0.5804}, {2.20, 0.5685}, {2.30, 0.5577}, {2.40, 0.5481},
	{2.50, 0.5397}, {2.60, 0.5325}, {2.70, 0.5264}, {2.80, 0.5211},
	{2.90, 0.5168}, {3.00, 0.5133}, {3.50, 0.5105}, {4.00, 0.5029},
	{5.00, 0.4980},
}

var g7Table = []node{
	{0.00, 0.1198}, {0.10, 0.1196}, {0.20, 0.1193}, {0.30, 0.1194},
	{0.40, 0.1193}, {0.50, 0.1194}, {0.60, 0.1194}, {0.65, 0.1197},
	{0.70, 0.1202}, {0.725, 0.1207}, {0.75, 0.1215}, {0.775, 0.1226},
	{0.80, 0.1242}, {0.825, 0.1266}, {0.85, 0.1306}, {0.875, 0.1368},
	{0.90, 0.1464}, {0.925, 0.1660}, {0.95, 0.2054}, {0.975, 0.2993},
	{1.00, 0.3803}, {1.025, 0.4015}, {1.05, 0.4043}, {1.075, 0.4034},
	{1.10, 0.4014}, {1.125, 0.3987}, {1.15, 0.3955}, {1.20, 0.3884},
	{1.25, 0.3810}, {1.30, 0.3732}, {1.35, 0.3657}, {1.40, 0.3580},
	{1.50, 0.3440}, {1.55, 0.3376}, {1.60, 0.3315}, {1.65, 0.3260},
	{1.70, 0.3209}, {1.75, 0.3160}, {1.80, 0.3117}, {1.90, 0.3042},
	{2.00, 0.2980}, {2.10, 0.2922}, {2.20, 0.2864}, {2.30, 0.2807},
	{2.40, 0.2752}, {2.50, 0.2697}, {2.60, 0.2643}, {2.70, 0.2588},
	{2.80, 0.2533}, {2.90, 0.2478}, {3.00, 0.2424}, {3.50, 0.2160},
	{4.00, 0.1933}, {5.00, 0.1577},
}
