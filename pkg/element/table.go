package element

// maxElement is the highest atomic number in the dataset.
const maxElement Element = 118

// entry holds the per-element constants: canonical symbol, standard
// atomic weight, most abundant natural mass number and the relative
// atomic mass of that isotope (the monoisotopic mass contribution).
// Weights follow the IUPAC abridged values; for elements with no stable
// isotope the conventional mass number of the longest-lived isotope is
// used as the weight.
type entry struct {
	symbol       string
	weight       float64
	massNumber   uint16
	monoisotopic float64
}

// elements is indexed by atomic number; index 0 is unused.
var elements = [maxElement + 1]entry{
	1:   {"H", 1.008, 1, 1.0078250319},
	2:   {"He", 4.002602, 4, 4.0026032497},
	3:   {"Li", 6.94, 7, 7.0160034366},
	4:   {"Be", 9.0121831, 9, 9.012183065},
	5:   {"B", 10.81, 11, 11.0093053645},
	6:   {"C", 12.011, 12, 12.0},
	7:   {"N", 14.007, 14, 14.0030740052},
	8:   {"O", 15.999, 16, 15.9949146221},
	9:   {"F", 18.998403163, 19, 18.9984031627},
	10:  {"Ne", 20.1797, 20, 19.9924401762},
	11:  {"Na", 22.98976928, 23, 22.989769282},
	12:  {"Mg", 24.305, 24, 23.985041697},
	13:  {"Al", 26.9815385, 27, 26.98153853},
	14:  {"Si", 28.085, 28, 27.9769265346},
	15:  {"P", 30.973761998, 31, 30.9737619984},
	16:  {"S", 32.06, 32, 31.9720711744},
	17:  {"Cl", 35.45, 35, 34.968852682},
	18:  {"Ar", 39.948, 40, 39.9623831237},
	19:  {"K", 39.0983, 39, 38.9637064864},
	20:  {"Ca", 40.078, 40, 39.962590863},
	21:  {"Sc", 44.955908, 45, 44.95590828},
	22:  {"Ti", 47.867, 48, 47.94794198},
	23:  {"V", 50.9415, 51, 50.94395704},
	24:  {"Cr", 51.9961, 52, 51.94050623},
	25:  {"Mn", 54.938044, 55, 54.93804391},
	26:  {"Fe", 55.845, 56, 55.93493633},
	27:  {"Co", 58.933194, 59, 58.93319429},
	28:  {"Ni", 58.6934, 58, 57.93534241},
	29:  {"Cu", 63.546, 63, 62.92959772},
	30:  {"Zn", 65.38, 64, 63.92914201},
	31:  {"Ga", 69.723, 69, 68.9255735},
	32:  {"Ge", 72.63, 74, 73.921177761},
	33:  {"As", 74.921595, 75, 74.92159457},
	34:  {"Se", 78.971, 80, 79.9165218},
	35:  {"Br", 79.904, 79, 78.9183376},
	36:  {"Kr", 83.798, 84, 83.9114977282},
	37:  {"Rb", 85.4678, 85, 84.9117897379},
	38:  {"Sr", 87.62, 88, 87.9056125},
	39:  {"Y", 88.90584, 89, 88.9058403},
	40:  {"Zr", 91.224, 90, 89.9046977},
	41:  {"Nb", 92.90637, 93, 92.906373},
	42:  {"Mo", 95.95, 98, 97.90540482},
	43:  {"Tc", 98.0, 98, 97.9072124},
	44:  {"Ru", 101.07, 102, 101.9043441},
	45:  {"Rh", 102.9055, 103, 102.905498},
	46:  {"Pd", 106.42, 106, 105.9034804},
	47:  {"Ag", 107.8682, 107, 106.9050916},
	48:  {"Cd", 112.414, 114, 113.90336509},
	49:  {"In", 114.818, 115, 114.903878776},
	50:  {"Sn", 118.71, 120, 119.90220163},
	51:  {"Sb", 121.76, 121, 120.903812},
	52:  {"Te", 127.6, 130, 129.906222748},
	53:  {"I", 126.90447, 127, 126.9044719},
	54:  {"Xe", 131.293, 132, 131.9041550856},
	55:  {"Cs", 132.90545196, 133, 132.905451961},
	56:  {"Ba", 137.327, 138, 137.905247},
	57:  {"La", 138.90547, 139, 138.9063563},
	58:  {"Ce", 140.116, 140, 139.9054431},
	59:  {"Pr", 140.90766, 141, 140.9076576},
	60:  {"Nd", 144.242, 142, 141.907729},
	61:  {"Pm", 145.0, 145, 144.9127559},
	62:  {"Sm", 150.36, 152, 151.9197397},
	63:  {"Eu", 151.964, 153, 152.921238},
	64:  {"Gd", 157.25, 158, 157.9241123},
	65:  {"Tb", 158.92535, 159, 158.9253547},
	66:  {"Dy", 162.5, 164, 163.9291819},
	67:  {"Ho", 164.93033, 165, 164.9303288},
	68:  {"Er", 167.259, 166, 165.9302995},
	69:  {"Tm", 168.93422, 169, 168.9342179},
	70:  {"Yb", 173.045, 174, 173.9388664},
	71:  {"Lu", 174.9668, 175, 174.9407752},
	72:  {"Hf", 178.49, 180, 179.946557},
	73:  {"Ta", 180.94788, 181, 180.9479958},
	74:  {"W", 183.84, 184, 183.95093092},
	75:  {"Re", 186.207, 187, 186.9557501},
	76:  {"Os", 190.23, 192, 191.961477},
	77:  {"Ir", 192.217, 193, 192.9629216},
	78:  {"Pt", 195.084, 195, 194.9647917},
	79:  {"Au", 196.966569, 197, 196.96656879},
	80:  {"Hg", 200.592, 202, 201.9706434},
	81:  {"Tl", 204.38, 205, 204.9744278},
	82:  {"Pb", 207.2, 208, 207.9766525},
	83:  {"Bi", 208.9804, 209, 208.9803991},
	84:  {"Po", 209.0, 209, 208.9824308},
	85:  {"At", 210.0, 210, 209.9871479},
	86:  {"Rn", 222.0, 222, 222.0175782},
	87:  {"Fr", 223.0, 223, 223.019736},
	88:  {"Ra", 226.0, 226, 226.0254103},
	89:  {"Ac", 227.0, 227, 227.0277523},
	90:  {"Th", 232.0377, 232, 232.0380558},
	91:  {"Pa", 231.03588, 231, 231.0358842},
	92:  {"U", 238.02891, 238, 238.0507884},
	93:  {"Np", 237.0, 237, 237.0481736},
	94:  {"Pu", 244.0, 244, 244.0642053},
	95:  {"Am", 243.0, 243, 243.0613815},
	96:  {"Cm", 247.0, 247, 247.0703541},
	97:  {"Bk", 247.0, 247, 247.0703073},
	98:  {"Cf", 251.0, 251, 251.0795886},
	99:  {"Es", 252.0, 252, 252.08298},
	100: {"Fm", 257.0, 257, 257.0951061},
	101: {"Md", 258.0, 258, 258.0984315},
	102: {"No", 259.0, 259, 259.10103},
	103: {"Lr", 266.0, 266, 266.11983},
	104: {"Rf", 267.0, 267, 267.12179},
	105: {"Db", 268.0, 268, 268.12567},
	106: {"Sg", 269.0, 269, 269.12863},
	107: {"Bh", 270.0, 270, 270.13336},
	108: {"Hs", 269.0, 269, 269.13375},
	109: {"Mt", 278.0, 278, 278.15631},
	110: {"Ds", 281.0, 281, 281.16451},
	111: {"Rg", 282.0, 282, 282.16912},
	112: {"Cn", 285.0, 285, 285.17712},
	113: {"Nh", 286.0, 286, 286.18221},
	114: {"Fl", 289.0, 289, 289.19042},
	115: {"Mc", 290.0, 290, 290.19598},
	116: {"Lv", 293.0, 293, 293.20449},
	117: {"Ts", 294.0, 294, 294.21046},
	118: {"Og", 294.0, 294, 294.21392},
}

type isotopeKey struct {
	el         Element
	massNumber uint16
}

// isotopes lists the minor natural isotopes and common labels beyond
// each element's most abundant isotope (which is served from elements).
var isotopes = map[isotopeKey]float64{
	{1, 2}:   2.0141017781, // deuterium
	{1, 3}:   3.0160492779, // tritium
	{3, 6}:   6.0151228874,
	{5, 10}:  10.01293695,
	{6, 13}:  13.0033548378,
	{6, 14}:  14.0032419884,
	{7, 15}:  15.0001088989,
	{8, 17}:  16.9991317565,
	{8, 18}:  17.9991596129,
	{10, 21}: 20.993846685,
	{10, 22}: 21.991385114,
	{12, 25}: 24.985836976,
	{12, 26}: 25.982592968,
	{14, 29}: 28.9764946649,
	{14, 30}: 29.973770136,
	{16, 33}: 32.9714589098,
	{16, 34}: 33.967867,
	{16, 36}: 35.96708071,
	{17, 37}: 36.965902602,
	{19, 40}: 39.963998166,
	{19, 41}: 40.9618252579,
	{20, 44}: 43.95548156,
	{24, 53}: 52.94064815,
	{26, 54}: 53.93960899,
	{26, 57}: 56.93539284,
	{26, 58}: 57.93327443,
	{28, 60}: 59.93078588,
	{28, 62}: 61.92834537,
	{29, 65}: 64.9277897,
	{30, 66}: 65.92603381,
	{30, 68}: 67.92484455,
	{34, 78}: 77.91730928,
	{35, 81}: 80.9162897,
	{47, 109}: 108.9047553,
	{78, 194}: 193.9626809,
	{82, 206}: 205.9744657,
	{82, 207}: 206.9758973,
	{92, 235}: 235.0439301,
}
