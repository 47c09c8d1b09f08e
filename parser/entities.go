package parser

// namedCharRefs maps character reference names (including the trailing
// semicolon when the name has one) to their replacement text. The entries
// without a semicolon are the legacy references, which carry the special
// attribute-value lookahead rule in the named character reference state.
//
// The published table has over two thousand entries; this is the working
// subset: the full Latin-1 repertoire with its legacy forms, Greek letters
// and the common punctuation, arrow and math symbols. Unknown names flush
// as literal text.
var namedCharRefs = map[string]string{
	// Core markup characters, legacy forms included.
	"amp;": "&", "amp": "&", "AMP;": "&", "AMP": "&",
	"lt;": "<", "lt": "<", "LT;": "<", "LT": "<",
	"gt;": ">", "gt": ">", "GT;": ">", "GT": ">",
	"quot;": "\"", "quot": "\"", "QUOT;": "\"", "QUOT": "\"",
	"apos;": "'",

	// Latin-1 supplement.
	"nbsp;": " ", "nbsp": " ",
	"iexcl;": "¡", "iexcl": "¡",
	"cent;": "¢", "cent": "¢",
	"pound;": "£", "pound": "£",
	"curren;": "¤", "curren": "¤",
	"yen;": "¥", "yen": "¥",
	"brvbar;": "¦", "brvbar": "¦",
	"sect;": "§", "sect": "§",
	"uml;": "¨", "uml": "¨",
	"copy;": "©", "copy": "©", "COPY;": "©", "COPY": "©",
	"ordf;": "ª", "ordf": "ª",
	"laquo;": "«", "laquo": "«",
	"not;": "¬", "not": "¬",
	"shy;": "­", "shy": "­",
	"reg;": "®", "reg": "®", "REG;": "®", "REG": "®",
	"macr;": "¯", "macr": "¯",
	"deg;": "°", "deg": "°",
	"plusmn;": "±", "plusmn": "±",
	"sup2;": "²", "sup2": "²",
	"sup3;": "³", "sup3": "³",
	"acute;": "´", "acute": "´",
	"micro;": "µ", "micro": "µ",
	"para;": "¶", "para": "¶",
	"middot;": "·", "middot": "·",
	"cedil;": "¸", "cedil": "¸",
	"sup1;": "¹", "sup1": "¹",
	"ordm;": "º", "ordm": "º",
	"raquo;": "»", "raquo": "»",
	"frac14;": "¼", "frac14": "¼",
	"frac12;": "½", "frac12": "½",
	"frac34;": "¾", "frac34": "¾",
	"iquest;": "¿", "iquest": "¿",
	"Agrave;": "À", "Agrave": "À",
	"Aacute;": "Á", "Aacute": "Á",
	"Acirc;": "Â", "Acirc": "Â",
	"Atilde;": "Ã", "Atilde": "Ã",
	"Auml;": "Ä", "Auml": "Ä",
	"Aring;": "Å", "Aring": "Å",
	"AElig;": "Æ", "AElig": "Æ",
	"Ccedil;": "Ç", "Ccedil": "Ç",
	"Egrave;": "È", "Egrave": "È",
	"Eacute;": "É", "Eacute": "É",
	"Ecirc;": "Ê", "Ecirc": "Ê",
	"Euml;": "Ë", "Euml": "Ë",
	"Igrave;": "Ì", "Igrave": "Ì",
	"Iacute;": "Í", "Iacute": "Í",
	"Icirc;": "Î", "Icirc": "Î",
	"Iuml;": "Ï", "Iuml": "Ï",
	"ETH;": "Ð", "ETH": "Ð",
	"Ntilde;": "Ñ", "Ntilde": "Ñ",
	"Ograve;": "Ò", "Ograve": "Ò",
	"Oacute;": "Ó", "Oacute": "Ó",
	"Ocirc;": "Ô", "Ocirc": "Ô",
	"Otilde;": "Õ", "Otilde": "Õ",
	"Ouml;": "Ö", "Ouml": "Ö",
	"times;": "×", "times": "×",
	"Oslash;": "Ø", "Oslash": "Ø",
	"Ugrave;": "Ù", "Ugrave": "Ù",
	"Uacute;": "Ú", "Uacute": "Ú",
	"Ucirc;": "Û", "Ucirc": "Û",
	"Uuml;": "Ü", "Uuml": "Ü",
	"Yacute;": "Ý", "Yacute": "Ý",
	"THORN;": "Þ", "THORN": "Þ",
	"szlig;": "ß", "szlig": "ß",
	"agrave;": "à", "agrave": "à",
	"aacute;": "á", "aacute": "á",
	"acirc;": "â", "acirc": "â",
	"atilde;": "ã", "atilde": "ã",
	"auml;": "ä", "auml": "ä",
	"aring;": "å", "aring": "å",
	"aelig;": "æ", "aelig": "æ",
	"ccedil;": "ç", "ccedil": "ç",
	"egrave;": "è", "egrave": "è",
	"eacute;": "é", "eacute": "é",
	"ecirc;": "ê", "ecirc": "ê",
	"euml;": "ë", "euml": "ë",
	"igrave;": "ì", "igrave": "ì",
	"iacute;": "í", "iacute": "í",
	"icirc;": "î", "icirc": "î",
	"iuml;": "ï", "iuml": "ï",
	"eth;": "ð", "eth": "ð",
	"ntilde;": "ñ", "ntilde": "ñ",
	"ograve;": "ò", "ograve": "ò",
	"oacute;": "ó", "oacute": "ó",
	"ocirc;": "ô", "ocirc": "ô",
	"otilde;": "õ", "otilde": "õ",
	"ouml;": "ö", "ouml": "ö",
	"divide;": "÷", "divide": "÷",
	"oslash;": "ø", "oslash": "ø",
	"ugrave;": "ù", "ugrave": "ù",
	"uacute;": "ú", "uacute": "ú",
	"ucirc;": "û", "ucirc": "û",
	"uuml;": "ü", "uuml": "ü",
	"yacute;": "ý", "yacute": "ý",
	"thorn;": "þ", "thorn": "þ",
	"yuml;": "ÿ", "yuml": "ÿ",

	// Latin extended.
	"OElig;": "Œ", "oelig;": "œ",
	"Scaron;": "Š", "scaron;": "š",
	"Yuml;": "Ÿ", "fnof;": "ƒ",
	"circ;": "ˆ", "tilde;": "˜",

	// Greek.
	"Alpha;": "Α", "Beta;": "Β", "Gamma;": "Γ",
	"Delta;": "Δ", "Epsilon;": "Ε", "Zeta;": "Ζ",
	"Eta;": "Η", "Theta;": "Θ", "Iota;": "Ι",
	"Kappa;": "Κ", "Lambda;": "Λ", "Mu;": "Μ",
	"Nu;": "Ν", "Xi;": "Ξ", "Omicron;": "Ο",
	"Pi;": "Π", "Rho;": "Ρ", "Sigma;": "Σ",
	"Tau;": "Τ", "Upsilon;": "Υ", "Phi;": "Φ",
	"Chi;": "Χ", "Psi;": "Ψ", "Omega;": "Ω",
	"alpha;": "α", "beta;": "β", "gamma;": "γ",
	"delta;": "δ", "epsilon;": "ε", "zeta;": "ζ",
	"eta;": "η", "theta;": "θ", "iota;": "ι",
	"kappa;": "κ", "lambda;": "λ", "mu;": "μ",
	"nu;": "ν", "xi;": "ξ", "omicron;": "ο",
	"pi;": "π", "rho;": "ρ", "sigmaf;": "ς",
	"sigma;": "σ", "tau;": "τ", "upsilon;": "υ",
	"phi;": "φ", "chi;": "χ", "psi;": "ψ",
	"omega;": "ω",

	// Punctuation, spaces.
	"ensp;": " ", "emsp;": " ", "thinsp;": " ",
	"zwnj;": "‌", "zwj;": "‍", "lrm;": "‎", "rlm;": "‏",
	"ndash;": "–", "mdash;": "—",
	"lsquo;": "‘", "rsquo;": "’", "sbquo;": "‚",
	"ldquo;": "“", "rdquo;": "”", "bdquo;": "„",
	"dagger;": "†", "Dagger;": "‡", "bull;": "•",
	"hellip;": "…", "permil;": "‰",
	"prime;": "′", "Prime;": "″",
	"lsaquo;": "‹", "rsaquo;": "›",
	"oline;": "‾", "frasl;": "⁄",
	"euro;": "€",

	// Letterlike, arrows.
	"trade;": "™", "TRADE;": "™",
	"alefsym;": "ℵ", "weierp;": "℘", "image;": "ℑ",
	"real;": "ℜ",
	"larr;": "←", "uarr;": "↑", "rarr;": "→",
	"darr;": "↓", "harr;": "↔", "crarr;": "↵",
	"lArr;": "⇐", "uArr;": "⇑", "rArr;": "⇒",
	"dArr;": "⇓", "hArr;": "⇔",

	// Math.
	"forall;": "∀", "part;": "∂", "exist;": "∃",
	"empty;": "∅", "nabla;": "∇", "isin;": "∈",
	"notin;": "∉", "ni;": "∋", "prod;": "∏",
	"sum;": "∑", "minus;": "−", "lowast;": "∗",
	"radic;": "√", "prop;": "∝", "infin;": "∞",
	"ang;": "∠", "and;": "∧", "or;": "∨",
	"cap;": "∩", "cup;": "∪", "int;": "∫",
	"there4;": "∴", "sim;": "∼", "cong;": "≅",
	"asymp;": "≈", "ne;": "≠", "equiv;": "≡",
	"le;": "≤", "ge;": "≥", "sub;": "⊂",
	"sup;": "⊃", "nsub;": "⊄", "sube;": "⊆",
	"supe;": "⊇", "oplus;": "⊕", "otimes;": "⊗",
	"perp;": "⊥", "sdot;": "⋅",
	"lceil;": "⌈", "rceil;": "⌉",
	"lfloor;": "⌊", "rfloor;": "⌋",
	"lang;": "⟨", "rang;": "⟩",
	"loz;": "◊", "spades;": "♠", "clubs;": "♣",
	"hearts;": "♥", "diams;": "♦",
}

// maxNamedRefLen bounds how far the named character reference state will
// accumulate before giving up on a match.
var maxNamedRefLen = func() int {
	max := 0
	for k := range namedCharRefs {
		if len(k) > max {
			max = len(k)
		}
	}
	return max
}()

// numericCharRefReplacements maps the C1-control range code points, which
// legacy documents use as windows-1252 bytes, to the characters their
// authors meant.
var numericCharRefReplacements = map[int32]rune{
	0x80: '€', 0x82: '‚', 0x83: 'ƒ', 0x84: '„',
	0x85: '…', 0x86: '†', 0x87: '‡', 0x88: 'ˆ',
	0x89: '‰', 0x8a: 'Š', 0x8b: '‹', 0x8c: 'Œ',
	0x8e: 'Ž', 0x91: '‘', 0x92: '’', 0x93: '“',
	0x94: '”', 0x95: '•', 0x96: '–', 0x97: '—',
	0x98: '˜', 0x99: '™', 0x9a: 'š', 0x9b: '›',
	0x9c: 'œ', 0x9e: 'ž', 0x9f: 'Ÿ',
}
